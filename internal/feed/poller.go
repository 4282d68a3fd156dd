// Package feed holds the client-core data plumbing: the polling
// subscription adapter, the multi-source activity aggregator and the
// optimistic toggle controller. Everything here is backend-agnostic and
// driven by fetch functions supplied by the caller.
package feed

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// PollInterval is the refresh cadence for emulated live views.
const PollInterval = 30 * time.Second

// CancelFunc tears down a subscription. Safe to call more than once.
type CancelFunc func()

// Poll emulates a live subscription over a fetch-based source: one
// immediate fetch-and-deliver, then one per interval. Cycles within a
// subscription are strictly sequential. After cancel no delivery happens,
// even for a fetch already in flight when cancel ran; the in-flight call
// completes and its result is discarded.
func Poll[T any](interval time.Duration, fetch func(context.Context) []T, deliver func([]T)) CancelFunc {
	var cancelled atomic.Bool
	done := make(chan struct{})

	run := func() {
		if cancelled.Load() {
			return
		}
		items := fetch(context.Background())
		if cancelled.Load() {
			return
		}
		deliver(items)
	}

	go func() {
		run()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				run()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancelled.Store(true)
			close(done)
		})
	}
}

// Subscribe is Poll at the standard interval, with the unconfigured
// backend handled up front: one empty delivery and no timer, so nothing
// polls a backend that can never answer.
func Subscribe[T any](configured bool, fetch func(context.Context) []T, deliver func([]T)) CancelFunc {
	if !configured {
		deliver([]T{})
		return func() {}
	}
	return Poll(PollInterval, fetch, deliver)
}
