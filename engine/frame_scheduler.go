package engine

import (
	"time"
)

// FrameCallback runs once inside a frame with the frame's host time
type FrameCallback func(now time.Time)

// FrameHandle identifies one pending frame request, zero is never issued
type FrameHandle uint64

type frameRequest struct {
	handle FrameHandle
	cb     FrameCallback
}

// FrameScheduler is the host's per-frame scheduling primitive
//
// Architecture:
//   - Requests are one-shot: a callback runs in the next frame only
//   - RunFrame snapshots the queue before running, so callbacks requested
//     during a frame (re-arming loops) run in the following frame
//   - Callbacks run in request order
//   - Single owner: the host main loop is the only caller, no locking
type FrameScheduler struct {
	pending []frameRequest
	running []frameRequest
	next    FrameHandle
	frames  uint64
}

// NewFrameScheduler creates an empty scheduler
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{
		pending: make([]frameRequest, 0, 8),
		running: make([]frameRequest, 0, 8),
	}
}

// RequestFrame schedules cb for the next frame and returns its cancel handle
func (s *FrameScheduler) RequestFrame(cb FrameCallback) FrameHandle {
	s.next++
	s.pending = append(s.pending, frameRequest{handle: s.next, cb: cb})
	return s.next
}

// CancelFrame removes a pending request, no-op for fired or unknown handles
func (s *FrameScheduler) CancelFrame(h FrameHandle) {
	for i, req := range s.pending {
		if req.handle == h {
			copy(s.pending[i:], s.pending[i+1:])
			s.pending[len(s.pending)-1] = frameRequest{}
			s.pending = s.pending[:len(s.pending)-1]
			return
		}
	}
	// A callback cancelling a sibling later in the same frame
	for i, req := range s.running {
		if req.handle == h {
			s.running[i].cb = nil
			return
		}
	}
}

// RunFrame executes every callback requested before this call
func (s *FrameScheduler) RunFrame(now time.Time) {
	s.frames++
	s.running, s.pending = s.pending, s.running[:0]
	for i := range s.running {
		if cb := s.running[i].cb; cb != nil {
			s.running[i].cb = nil
			cb(now)
		}
	}
	clear(s.running)
	s.running = s.running[:0]
}

// Pending returns the number of requests waiting for the next frame
func (s *FrameScheduler) Pending() int {
	return len(s.pending)
}

// Frames returns the number of frames run
func (s *FrameScheduler) Frames() uint64 {
	return s.frames
}
