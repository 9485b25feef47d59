// Package timer provides elapsed-time tracking for CLI activities.
//
// A Timer tracks the total duration since Start and the duration of the
// current stage. Command handlers call NewStage between activities so
// success messages can report both per-stage and total timings.
package timer

import (
	"sync"
	"time"
)

// Timer tracks total and per-stage elapsed time for a command run.
type Timer interface {
	// Start begins tracking time. Subsequent calls reset the timer.
	Start()
	// NewStage marks the beginning of a new stage, resetting the stage clock.
	NewStage()
	// GetTiming returns the total elapsed time since Start and the elapsed
	// time of the current stage.
	GetTiming() (total, stage time.Duration)
}

// New creates a Timer backed by the wall clock.
func New() Timer {
	return &clockTimer{}
}

type clockTimer struct {
	mu         sync.Mutex
	startTime  time.Time
	stageStart time.Time
}

func (t *clockTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.startTime = now
	t.stageStart = now
}

func (t *clockTimer) NewStage() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stageStart = time.Now()
}

func (t *clockTimer) GetTiming() (time.Duration, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.startTime.IsZero() {
		return 0, 0
	}

	now := time.Now()

	return now.Sub(t.startTime), now.Sub(t.stageStart)
}
