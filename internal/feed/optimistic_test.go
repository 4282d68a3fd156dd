package feed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToggleFlipOnSuccess(t *testing.T) {
	require := require.New(t)

	tg := NewToggle(false, 5)
	var wrote []bool

	require.NoError(tg.Flip(func(turnOn bool) error {
		wrote = append(wrote, turnOn)
		return nil
	}))
	on, count := tg.State()
	require.True(on)
	require.Equal(6, count)

	require.NoError(tg.Flip(func(turnOn bool) error {
		wrote = append(wrote, turnOn)
		return nil
	}))
	on, count = tg.State()
	require.False(on)
	require.Equal(5, count)

	require.Equal([]bool{true, false}, wrote)
}

func TestToggleRollbackOnWriteFailure(t *testing.T) {
	require := require.New(t)

	tg := NewToggle(false, 5)
	boom := errors.New("write failed")

	err := tg.Flip(func(turnOn bool) error { return boom })
	require.ErrorIs(err, boom)

	// Exactly the state before the flip, not a refetched one.
	on, count := tg.State()
	require.False(on)
	require.Equal(5, count)
}

func TestToggleRollbackFromOnState(t *testing.T) {
	require := require.New(t)

	tg := NewToggle(true, 3)
	err := tg.Flip(func(turnOn bool) error {
		require.False(turnOn)
		return errors.New("nope")
	})
	require.Error(err)

	on, count := tg.State()
	require.True(on)
	require.Equal(3, count)
}

func TestToggleNoRetryAfterFailure(t *testing.T) {
	require := require.New(t)

	tg := NewToggle(false, 0)
	calls := 0
	_ = tg.Flip(func(bool) error {
		calls++
		return errors.New("transient")
	})
	require.Equal(1, calls)

	// A later flip is a fresh attempt, not a replay.
	require.NoError(tg.Flip(func(turnOn bool) error {
		calls++
		require.True(turnOn)
		return nil
	}))
	require.Equal(2, calls)
	on, count := tg.State()
	require.True(on)
	require.Equal(1, count)
}
