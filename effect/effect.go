package effect

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/trailfx/engine"
	"github.com/lixenwraith/trailfx/status"
	"github.com/lixenwraith/trailfx/vmath"
)

// Effect is one mounted instance of the trail engine
//
// Architecture:
//   - Arena per view: every piece of mutable state lives here, nothing is shared between views
//   - Three independent frame loops: ambient graph, particles, follower
//   - Pointer and resize input arrive through the host event bus
//   - Single owner: all methods run on the host main loop
type Effect struct {
	id  string
	cfg Config
	rng *rand.Rand
	log *zap.Logger

	observers []func(Observed)
	spawnHook func(n int, speed float64)

	statParticles *atomic.Int64
	statSpawned   *atomic.Int64
	statNodes     *atomic.Int64
	statMounts    *atomic.Int64

	tracker   *Tracker
	particles *ParticleSet
	ambient   *AmbientField
	follower  *Follower

	surfaces Surfaces
	loops    []*engine.FrameLoop
	unsubs   []func()
	mounted  bool
}

// Option configures an Effect at construction
type Option func(*Effect)

// WithRand sets the random source, seeded sources make runs reproducible
func WithRand(rng *rand.Rand) Option {
	return func(e *Effect) { e.rng = rng }
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(e *Effect) { e.log = log }
}

// WithMetrics publishes counters to reg
func WithMetrics(reg *status.Registry) Option {
	return func(e *Effect) {
		e.statParticles = reg.Int(status.MetricParticles)
		e.statSpawned = reg.Int(status.MetricSpawned)
		e.statNodes = reg.Int(status.MetricNodes)
		e.statMounts = reg.Int(status.MetricMounts)
	}
}

// WithObserver registers fn for every observed-position publish
func WithObserver(fn func(Observed)) Option {
	return func(e *Effect) { e.observers = append(e.observers, fn) }
}

// WithSpawnHook registers fn for every pointer event that spawned particles
func WithSpawnHook(fn func(n int, speed float64)) Option {
	return func(e *Effect) { e.spawnHook = fn }
}

// WithID overrides the generated instance id
func WithID(id string) Option {
	return func(e *Effect) { e.id = id }
}

// New creates an unmounted effect
func New(cfg Config, opts ...Option) (*Effect, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Effect{
		id:  uuid.NewString(),
		cfg: cfg,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e.log = e.log.With(zap.String("effect", e.id))
	e.reset()
	return e, nil
}

// reset builds fresh per-mount state
func (e *Effect) reset() {
	e.tracker = NewTracker(e.cfg.HistoryWindow, e.cfg.HistoryCap, e.cfg.PublishInterval)
	for _, fn := range e.observers {
		e.tracker.Observe(fn)
	}
	e.particles = NewParticleSet(e.cfg.MaxParticles)
	e.ambient = &AmbientField{}
	e.follower = NewFollower(vmath.Vec2{}, e.cfg.FollowerEase)
}

// Mount starts the loops and registers listeners on the host primitives
// A nil surface silently disables the loop that draws to it
func (e *Effect) Mount(sched *engine.FrameScheduler, bus *engine.EventBus, s Surfaces) error {
	if e.mounted {
		return fmt.Errorf("mount %s: %w", e.id, ErrMounted)
	}
	e.reset()
	e.surfaces = s
	e.mounted = true

	if s.Ambient != nil {
		w, h := s.Ambient.Size()
		e.ambient = NewAmbientField(e.cfg.NodeCount, w, h, e.cfg.NodeSpeed, e.rng)
		e.loops = append(e.loops, engine.NewFrameLoop(sched, e.stepAmbient))
	}
	if s.Particles != nil {
		e.loops = append(e.loops, engine.NewFrameLoop(sched, e.stepParticles))
	}
	e.loops = append(e.loops, engine.NewFrameLoop(sched, e.stepFollower))

	e.unsubs = append(e.unsubs,
		bus.OnPointerMove(e.onPointer),
		bus.OnResize(e.onResize),
	)
	for _, l := range e.loops {
		l.Start()
	}

	e.setStat(e.statNodes, int64(e.ambient.Len()))
	e.setStat(e.statParticles, 0)
	if e.statMounts != nil {
		e.statMounts.Add(1)
	}
	e.log.Debug("effect mounted",
		zap.Int("nodes", e.ambient.Len()),
		zap.Int("loops", len(e.loops)),
	)
	return nil
}

// Unmount stops every loop and removes every listener; later calls are no-ops
func (e *Effect) Unmount() {
	if !e.mounted {
		return
	}
	e.mounted = false
	for _, l := range e.loops {
		l.Stop()
	}
	for _, unsub := range e.unsubs {
		unsub()
	}
	e.loops = nil
	e.unsubs = nil
	e.surfaces = Surfaces{}
	if e.statMounts != nil {
		e.statMounts.Add(-1)
	}
	e.log.Debug("effect unmounted", zap.Int("particles", e.particles.Len()))
}

func (e *Effect) onPointer(ev engine.PointerEvent) {
	speed := e.tracker.Move(ev)
	if e.surfaces.Particles == nil {
		return
	}
	n := e.particles.Spawn(e.tracker.History(), e.tracker.Live(), speed, e.cfg, e.rng)
	if n == 0 {
		return
	}
	if e.statSpawned != nil {
		e.statSpawned.Add(int64(n))
	}
	e.setStat(e.statParticles, int64(e.particles.Len()))
	if e.spawnHook != nil {
		e.spawnHook(n, speed)
	}
}

func (e *Effect) onResize(w, h float64) {
	if e.surfaces.Ambient != nil {
		e.surfaces.Ambient.Resize(w, h)
	}
	if e.surfaces.Particles != nil {
		e.surfaces.Particles.Resize(w, h)
	}
}

func (e *Effect) stepAmbient(_ time.Time) {
	c := e.surfaces.Ambient
	w, h := c.Size()
	e.ambient.Step(w, h)
	e.ambient.Draw(c, e.cfg)
}

func (e *Effect) stepParticles(_ time.Time) {
	e.particles.Advance(e.cfg.ProgressStep)
	e.particles.Draw(e.surfaces.Particles)
	e.setStat(e.statParticles, int64(e.particles.Len()))
}

func (e *Effect) stepFollower(_ time.Time) {
	e.follower.Step(e.tracker.Live())
}

func (e *Effect) setStat(stat *atomic.Int64, v int64) {
	if stat != nil {
		stat.Store(v)
	}
}

// ID returns the instance id
func (e *Effect) ID() string {
	return e.id
}

// Config returns the effect configuration
func (e *Effect) Config() Config {
	return e.cfg
}

// Mounted reports whether the effect is running
func (e *Effect) Mounted() bool {
	return e.mounted
}

// Live returns the latest raw pointer position
func (e *Effect) Live() vmath.Vec2 {
	return e.tracker.Live()
}

// Observed returns the throttled pointer position and whether one was published
func (e *Effect) Observed() (Observed, bool) {
	return e.tracker.Observed()
}

// FollowerPos returns the smoothed follower position
func (e *Effect) FollowerPos() vmath.Vec2 {
	return e.follower.Pos()
}

// Particles returns a copy of the active particles
func (e *Effect) Particles() []Particle {
	return e.particles.Snapshot()
}

// Nodes returns a copy of the ambient nodes
func (e *Effect) Nodes() []Node {
	return e.ambient.Nodes()
}

// History returns a copy of the pointer history, oldest first
func (e *Effect) History() []Sample {
	return e.tracker.History().Samples()
}
