package effect

import (
	"github.com/lixenwraith/trailfx/vmath"
)

// Follower trails the live pointer with per-frame exponential smoothing
type Follower struct {
	pos  vmath.Vec2
	ease float64
}

// NewFollower creates a follower resting at start
func NewFollower(start vmath.Vec2, ease float64) *Follower {
	return &Follower{pos: start, ease: ease}
}

// Step moves ease of the remaining distance toward target
func (f *Follower) Step(target vmath.Vec2) vmath.Vec2 {
	f.pos = vmath.Approach(f.pos, target, f.ease)
	return f.pos
}

// Pos returns the current position
func (f *Follower) Pos() vmath.Vec2 {
	return f.pos
}
