package effect

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/trailfx/parameter"
	"github.com/lixenwraith/trailfx/render"
	"github.com/lixenwraith/trailfx/vmath"
)

// Particle travels from Origin to Target as Progress goes 0 → 1
type Particle struct {
	Origin   vmath.Vec2
	Target   vmath.Vec2
	Color    render.RGB
	Progress float64
}

// Position returns the current head position
func (p Particle) Position() vmath.Vec2 {
	return vmath.Lerp(p.Origin, p.Target, p.Progress)
}

// ParticleSet is the active particle list, oldest first
type ParticleSet struct {
	items []Particle
	max   int
}

// NewParticleSet creates an empty set holding at most max particles
func NewParticleSet(max int) *ParticleSet {
	return &ParticleSet{
		items: make([]Particle, 0, max+parameter.SpawnMaxPerEvent),
		max:   max,
	}
}

// SpawnCount returns how many particles an event of the given speed spawns
func SpawnCount(speed float64, cfg Config) int {
	if speed <= cfg.SpeedThreshold {
		return 0
	}
	n := int(math.Floor(speed / cfg.SpawnDivisor))
	return min(cfg.MaxSpawn, n)
}

// Spawn emits particles for one pointer event and returns how many were added
// Particles start at the second-most recent sample and head for cur with per-axis jitter
func (s *ParticleSet) Spawn(h *PointerHistory, cur vmath.Vec2, speed float64, cfg Config, rng *rand.Rand) int {
	if h.Len() < 2 {
		return 0
	}
	n := SpawnCount(speed, cfg)
	if n <= 0 {
		return 0
	}

	origin := h.At(h.Len() - 2).Pos
	for i := 0; i < n; i++ {
		target := vmath.V(
			cur.X+(rng.Float64()*2-1)*cfg.SpawnJitter,
			cur.Y+(rng.Float64()*2-1)*cfg.SpawnJitter,
		)
		s.items = append(s.items, Particle{
			Origin: origin,
			Target: target,
			Color:  cfg.Palette[rng.IntN(len(cfg.Palette))],
		})
	}

	if over := len(s.items) - s.max; over > 0 {
		s.items = append(s.items[:0], s.items[over:]...)
	}
	return n
}

// Advance steps every particle's progress and removes finished ones, order preserved
func (s *ParticleSet) Advance(step float64) {
	keep := s.items[:0]
	for _, p := range s.items {
		p.Progress += step
		if p.Progress < 1 {
			keep = append(keep, p)
		}
	}
	clear(s.items[len(keep):])
	s.items = keep
}

// Draw repaints the canvas from scratch with the current particles
func (s *ParticleSet) Draw(c Canvas) {
	c.Clear()
	for _, p := range s.items {
		fade := 1 - p.Progress
		head := p.Position()
		c.Line(p.Origin.X, p.Origin.Y, head.X, head.Y, p.Color, fade*parameter.ParticleStrokeOpacity)
		c.Disc(head.X, head.Y, parameter.ParticleHeadRadius, p.Color, fade, true)
		c.Disc(p.Origin.X, p.Origin.Y, parameter.ParticleOriginRadius, p.Color, fade*parameter.ParticleOriginOpacity, false)
	}
}

// Len returns the number of active particles
func (s *ParticleSet) Len() int {
	return len(s.items)
}

// Snapshot returns a copy of the active particles
func (s *ParticleSet) Snapshot() []Particle {
	return append([]Particle(nil), s.items...)
}

// Reset drops every particle
func (s *ParticleSet) Reset() {
	clear(s.items)
	s.items = s.items[:0]
}
