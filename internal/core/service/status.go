package service

import (
	"sync"
	"time"
)

type SaveState string

const (
	SaveIdle   SaveState = "idle"
	SaveSaving SaveState = "saving"
	SaveSaved  SaveState = "saved"
	SaveError  SaveState = "error"
)

const defaultStatusHold = 2 * time.Second

// StatusTracker drives the admin save indicator. The state cycles
// idle -> saving -> saved|error -> idle on a fixed timer; it is a
// display surface, not a completion signal.
type StatusTracker struct {
	mu    sync.Mutex
	state SaveState
	hold  time.Duration
	timer *time.Timer
	gen   uint64
}

func NewStatusTracker(hold time.Duration) *StatusTracker {
	if hold <= 0 {
		hold = defaultStatusHold
	}
	return &StatusTracker{state: SaveIdle, hold: hold}
}

// Begin invalidates any scheduled return to idle so a save started
// during the hold window is not flipped back by the previous one.
func (t *StatusTracker) Begin() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if t.timer != nil {
		t.timer.Stop()
	}
	t.state = SaveSaving
}

// Settle records the write outcome and schedules the return to idle.
// The state write and the timer swap happen under one lock, and the
// scheduled reset carries a generation stamp so a stale timer that
// already fired can never touch a newer save.
func (t *StatusTracker) Settle(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err != nil {
		t.state = SaveError
	} else {
		t.state = SaveSaved
	}

	t.gen++
	gen := t.gen
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.hold, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.gen != gen {
			return
		}
		t.state = SaveIdle
	})
}

func (t *StatusTracker) State() SaveState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
