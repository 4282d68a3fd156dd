package feed

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPollDeliversImmediately(t *testing.T) {
	require := require.New(t)

	delivered := make(chan []int, 1)
	cancel := Poll(time.Hour, func(ctx context.Context) []int {
		return []int{1, 2, 3}
	}, func(items []int) {
		delivered <- items
	})
	defer cancel()

	select {
	case items := <-delivered:
		require.Equal([]int{1, 2, 3}, items)
	case <-time.After(2 * time.Second):
		t.Fatal("no delivery before the first tick")
	}
}

func TestPollRepeatsOnInterval(t *testing.T) {
	require := require.New(t)

	var calls atomic.Int32
	delivered := make(chan struct{}, 16)
	cancel := Poll(10*time.Millisecond, func(ctx context.Context) []int {
		calls.Add(1)
		return nil
	}, func([]int) {
		delivered <- struct{}{}
	})
	defer cancel()

	for i := 0; i < 3; i++ {
		select {
		case <-delivered:
		case <-time.After(2 * time.Second):
			t.Fatal("poll cycle did not run")
		}
	}
	require.GreaterOrEqual(calls.Load(), int32(3))
}

func TestPollCancelDiscardsInFlightFetch(t *testing.T) {
	require := require.New(t)

	started := make(chan struct{})
	release := make(chan struct{})
	var deliveries atomic.Int32

	cancel := Poll(time.Hour, func(ctx context.Context) []int {
		close(started)
		<-release
		return []int{42}
	}, func([]int) {
		deliveries.Add(1)
	})

	<-started
	cancel()
	close(release)

	// Give the in-flight cycle time to finish and (wrongly) deliver.
	time.Sleep(50 * time.Millisecond)
	require.Equal(int32(0), deliveries.Load())

	// Cancel twice is fine.
	cancel()
}

func TestSubscribeUnconfiguredDeliversEmptyOnce(t *testing.T) {
	require := require.New(t)

	var fetches atomic.Int32
	var deliveries [][]string
	cancel := Subscribe(false, func(ctx context.Context) []string {
		fetches.Add(1)
		return []string{"should not happen"}
	}, func(items []string) {
		deliveries = append(deliveries, items)
	})
	defer cancel()

	require.Len(deliveries, 1)
	require.NotNil(deliveries[0])
	require.Empty(deliveries[0])
	require.Equal(int32(0), fetches.Load())
}
