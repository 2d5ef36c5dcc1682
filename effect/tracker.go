package effect

import (
	"time"

	"github.com/lixenwraith/trailfx/engine"
	"github.com/lixenwraith/trailfx/vmath"
)

// Observed is the throttled pointer position exposed outside the engine
type Observed struct {
	Pos vmath.Vec2
	At  time.Time
}

// Tracker records pointer motion and derives per-event speed
//
// Two positions are kept:
//   - live: updated synchronously on every event, drives the follower
//   - observed: published at most once per interval, drives pointer-reactive UI
type Tracker struct {
	history  *PointerHistory
	interval time.Duration

	live    vmath.Vec2
	prev    vmath.Vec2
	hasPrev bool

	observed    Observed
	lastPublish time.Time
	published   bool
	observers   []func(Observed)
}

// NewTracker creates a tracker with an empty history
func NewTracker(window time.Duration, limit int, interval time.Duration) *Tracker {
	return &Tracker{
		history:  NewPointerHistory(window, limit),
		interval: interval,
	}
}

// Observe registers fn to receive every observed-position publish
func (t *Tracker) Observe(fn func(Observed)) {
	t.observers = append(t.observers, fn)
}

// Move ingests one pointer event and returns its speed in units per event
// Speed is the distance from the previous raw event, zero for the first
func (t *Tracker) Move(ev engine.PointerEvent) float64 {
	pos := vmath.V(ev.X, ev.Y)

	var speed float64
	if t.hasPrev {
		speed = vmath.Distance(pos, t.prev)
	}
	t.prev = pos
	t.hasPrev = true
	t.live = pos

	if !t.published || ev.At.Sub(t.lastPublish) > t.interval {
		t.published = true
		t.lastPublish = ev.At
		t.observed = Observed{Pos: pos, At: ev.At}
		for _, fn := range t.observers {
			fn(t.observed)
		}
	}

	t.history.Push(Sample{Pos: pos, At: ev.At})
	return speed
}

// Live returns the latest raw pointer position
func (t *Tracker) Live() vmath.Vec2 {
	return t.live
}

// Observed returns the last published position and whether any was published
func (t *Tracker) Observed() (Observed, bool) {
	return t.observed, t.published
}

// History returns the sample history
func (t *Tracker) History() *PointerHistory {
	return t.history
}
