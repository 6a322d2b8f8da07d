package game

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// ActionTimer is the single-shot auto-fold timer for the seat to act.
// Each arming is bound to the hand's action sequence number: the fire
// callback receives the sequence it was armed with, and the receiver
// discards fires whose sequence no longer matches the hand. Stopping
// the underlying timer is best effort only; the sequence guard is
// what closes the cancel-versus-fire race.
type ActionTimer struct {
	clock   quartz.Clock
	timeout time.Duration

	mu    sync.Mutex
	timer *quartz.Timer
}

// NewActionTimer creates an action timer driven by the given clock.
// Tests pass a quartz mock to fire timeouts deterministically.
func NewActionTimer(clock quartz.Clock, timeout time.Duration) *ActionTimer {
	return &ActionTimer{clock: clock, timeout: timeout}
}

// Arm schedules fire(seq) after the timeout, replacing any previously
// armed timer.
func (at *ActionTimer) Arm(seq uint64, fire func(seq uint64)) {
	at.mu.Lock()
	defer at.mu.Unlock()

	if at.timer != nil {
		at.timer.Stop()
	}
	at.timer = at.clock.AfterFunc(at.timeout, func() {
		fire(seq)
	})
}

// Cancel stops any pending timer.
func (at *ActionTimer) Cancel() {
	at.mu.Lock()
	defer at.mu.Unlock()

	if at.timer != nil {
		at.timer.Stop()
		at.timer = nil
	}
}
