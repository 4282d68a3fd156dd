package feed

import "sync"

// Toggle is the optimistic state of one boolean relation carrying a
// denormalized count, e.g. "viewer likes this tip" plus the tip's like
// count. Flip updates both locally before the remote write resolves; a
// failed write is undone by the exact inverse adjustment, never by a
// refetch, which would be slower and could race with other local
// mutations. No retry: the user may simply toggle again.
type Toggle struct {
	mu    sync.Mutex
	on    bool
	count int
}

// NewToggle starts from the last known remote state.
func NewToggle(on bool, count int) *Toggle {
	return &Toggle{on: on, count: count}
}

// State returns the relation flag and count as one consistent pair.
func (t *Toggle) State() (on bool, count int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.on, t.count
}

// Flip applies the local transition synchronously, then runs the remote
// write for the new state. On write failure the local transition is
// reversed and the error returned for the caller to surface.
func (t *Toggle) Flip(write func(turnOn bool) error) error {
	t.mu.Lock()
	t.on = !t.on
	turnOn := t.on
	if turnOn {
		t.count++
	} else {
		t.count--
	}
	t.mu.Unlock()

	if err := write(turnOn); err != nil {
		t.mu.Lock()
		t.on = !t.on
		if turnOn {
			t.count--
		} else {
			t.count++
		}
		t.mu.Unlock()
		return err
	}
	return nil
}
