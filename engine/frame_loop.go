package engine

import (
	"time"
)

// FrameLoop is a self-sustaining repeating task on a FrameScheduler
// Each step re-arms the next request at the end of its body; Stop cancels the outstanding request
type FrameLoop struct {
	sched   *FrameScheduler
	step    FrameCallback
	handle  FrameHandle
	running bool
	stopped bool
	steps   uint64
}

// NewFrameLoop creates a stopped loop running step once per frame after Start
func NewFrameLoop(sched *FrameScheduler, step FrameCallback) *FrameLoop {
	return &FrameLoop{sched: sched, step: step}
}

// Start arms the first frame request, no-op if running or already stopped
func (l *FrameLoop) Start() {
	if l.running || l.stopped {
		return
	}
	l.running = true
	l.handle = l.sched.RequestFrame(l.tick)
}

func (l *FrameLoop) tick(now time.Time) {
	l.handle = 0
	if !l.running {
		return
	}
	l.steps++
	l.step(now)
	// Step may have stopped the loop
	if l.running {
		l.handle = l.sched.RequestFrame(l.tick)
	}
}

// Stop cancels the outstanding frame request exactly once, later calls are no-ops
// A stopped loop cannot be restarted
func (l *FrameLoop) Stop() {
	if l.stopped {
		return
	}
	l.stopped = true
	l.running = false
	if l.handle != 0 {
		l.sched.CancelFrame(l.handle)
		l.handle = 0
	}
}

// Running reports whether the loop is armed
func (l *FrameLoop) Running() bool {
	return l.running
}

// Steps returns how many frames the loop has executed
func (l *FrameLoop) Steps() uint64 {
	return l.steps
}
