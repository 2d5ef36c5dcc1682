package effect

import (
	"time"

	"github.com/lixenwraith/trailfx/vmath"
)

// Sample is one recorded pointer position
type Sample struct {
	Pos vmath.Vec2
	At  time.Time
}

// PointerHistory is a bounded, time-windowed list of recent samples, oldest first
type PointerHistory struct {
	samples []Sample
	window  time.Duration
	limit   int
}

// NewPointerHistory creates an empty history
func NewPointerHistory(window time.Duration, limit int) *PointerHistory {
	return &PointerHistory{
		samples: make([]Sample, 0, limit+1),
		window:  window,
		limit:   limit,
	}
}

// Push appends s, drops samples at least window older than s, then keeps the newest limit
func (h *PointerHistory) Push(s Sample) {
	h.samples = append(h.samples, s)

	keep := h.samples[:0]
	for _, old := range h.samples {
		if s.At.Sub(old.At) < h.window {
			keep = append(keep, old)
		}
	}
	h.samples = keep

	if over := len(h.samples) - h.limit; over > 0 {
		h.samples = append(h.samples[:0], h.samples[over:]...)
	}
}

// Len returns the number of retained samples
func (h *PointerHistory) Len() int {
	return len(h.samples)
}

// At returns the i-th sample, oldest first
func (h *PointerHistory) At(i int) Sample {
	return h.samples[i]
}

// Samples returns a copy of the retained samples
func (h *PointerHistory) Samples() []Sample {
	return append([]Sample(nil), h.samples...)
}

// Reset drops every sample
func (h *PointerHistory) Reset() {
	h.samples = h.samples[:0]
}
