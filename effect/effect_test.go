package effect

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lixenwraith/trailfx/engine"
	"github.com/lixenwraith/trailfx/render"
	"github.com/lixenwraith/trailfx/status"
	"github.com/lixenwraith/trailfx/vmath"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// recordCanvas counts drawing calls in order
type recordCanvas struct {
	w, h    float64
	ops     []string
	clears  int
	lines   int
	discs   int
	resizes int
}

func newRecordCanvas(w, h float64) *recordCanvas {
	return &recordCanvas{w: w, h: h}
}

func (c *recordCanvas) Size() (float64, float64) { return c.w, c.h }
func (c *recordCanvas) Resize(w, h float64) {
	c.w, c.h = w, h
	c.resizes++
}
func (c *recordCanvas) Clear() {
	c.clears++
	c.ops = append(c.ops, "clear")
}
func (c *recordCanvas) Fade(render.RGB, float64) { c.ops = append(c.ops, "fade") }
func (c *recordCanvas) Line(_, _, _, _ float64, _ render.RGB, _ float64) {
	c.lines++
	c.ops = append(c.ops, "line")
}
func (c *recordCanvas) Disc(_, _, _ float64, _ render.RGB, _ float64, _ bool) {
	c.discs++
	c.ops = append(c.ops, "disc")
}
func (c *recordCanvas) reset() { *c = recordCanvas{w: c.w, h: c.h} }

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

// harness mounts one effect on fresh host primitives
type harness struct {
	sched     *engine.FrameScheduler
	bus       *engine.EventBus
	ambient   *recordCanvas
	particles *recordCanvas
	fx        *Effect
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		sched:     engine.NewFrameScheduler(),
		bus:       engine.NewEventBus(),
		ambient:   newRecordCanvas(800, 600),
		particles: newRecordCanvas(800, 600),
	}
	opts = append([]Option{WithRand(seeded()), WithLogger(zaptest.NewLogger(t))}, opts...)
	fx, err := New(DefaultConfig(), opts...)
	require.NoError(t, err)
	require.NoError(t, fx.Mount(h.sched, h.bus, Surfaces{Ambient: h.ambient, Particles: h.particles}))
	h.fx = fx
	return h
}

func (h *harness) move(x, y float64, ms int) {
	h.bus.DispatchPointer(engine.PointerEvent{X: x, Y: y, At: at(ms)})
}

func (h *harness) frames(n int) {
	for i := 0; i < n; i++ {
		h.sched.RunFrame(epoch)
	}
}

func TestHistoryBoundedAndWindowed(t *testing.T) {
	tr := NewTracker(2*time.Second, 10, 16*time.Millisecond)
	for i := 0; i < 100; i++ {
		tr.Move(engine.PointerEvent{X: float64(i), At: at(i * 50)})
		h := tr.History()
		require.LessOrEqual(t, h.Len(), 10)
		latest := h.At(h.Len() - 1).At
		for j := 0; j < h.Len(); j++ {
			assert.Less(t, latest.Sub(h.At(j).At), 2*time.Second)
		}
	}
	assert.Equal(t, 10, tr.History().Len())
}

func TestHistoryDropsSamplesAtWindowEdge(t *testing.T) {
	h := NewPointerHistory(2*time.Second, 10)
	for _, ms := range []int{0, 500, 1000, 1500, 2000} {
		h.Push(Sample{At: at(ms)})
	}
	// The sample exactly 2000ms old is dropped
	require.Equal(t, 4, h.Len())
	assert.Equal(t, at(500), h.At(0).At)

	h.Reset()
	assert.Equal(t, 0, h.Len())
}

func TestTrackerSpeedAndLivePosition(t *testing.T) {
	tr := NewTracker(2*time.Second, 10, 16*time.Millisecond)
	assert.Equal(t, 0.0, tr.Move(engine.PointerEvent{X: 10, Y: 10, At: at(0)}), "first event has no speed")
	assert.Equal(t, 5.0, tr.Move(engine.PointerEvent{X: 13, Y: 14, At: at(1)}))
	assert.Equal(t, vmath.V(13, 14), tr.Live())
}

func TestTrackerThrottlesObservedPosition(t *testing.T) {
	tr := NewTracker(2*time.Second, 10, 16*time.Millisecond)
	var published []Observed
	tr.Observe(func(o Observed) { published = append(published, o) })

	_, ok := tr.Observed()
	assert.False(t, ok)

	for _, ms := range []int{0, 5, 10, 16, 17, 20, 40} {
		tr.Move(engine.PointerEvent{X: float64(ms), At: at(ms)})
	}

	// 0 publishes; 17 is the first strictly more than 16ms later; 40 follows 17
	require.Len(t, published, 3)
	assert.Equal(t, at(0), published[0].At)
	assert.Equal(t, at(17), published[1].At)
	assert.Equal(t, at(40), published[2].At)

	obs, ok := tr.Observed()
	assert.True(t, ok)
	assert.Equal(t, vmath.V(40, 0), obs.Pos)
	assert.Equal(t, vmath.V(40, 0), tr.Live())
}

func TestSpawnFastMovementSpawnsTwo(t *testing.T) {
	cfg := DefaultConfig()
	h := NewPointerHistory(cfg.HistoryWindow, cfg.HistoryCap)
	h.Push(Sample{Pos: vmath.V(0, 0), At: at(0)})
	h.Push(Sample{Pos: vmath.V(500, 0), At: at(16)})

	s := NewParticleSet(cfg.MaxParticles)
	n := s.Spawn(h, vmath.V(500, 0), 500, cfg, seeded())
	require.Equal(t, 2, n)
	require.Equal(t, 2, s.Len())

	for _, p := range s.Snapshot() {
		assert.Equal(t, vmath.V(0, 0), p.Origin, "particles start at the previous sample")
		assert.InDelta(t, 500, p.Target.X, cfg.SpawnJitter)
		assert.InDelta(t, 0, p.Target.Y, cfg.SpawnJitter)
		assert.Contains(t, cfg.Palette, p.Color)
		assert.Equal(t, 0.0, p.Progress)
	}
}

func TestSpawnSlowMovementSpawnsNothing(t *testing.T) {
	cfg := DefaultConfig()
	h := NewPointerHistory(cfg.HistoryWindow, cfg.HistoryCap)
	h.Push(Sample{At: at(0)})
	h.Push(Sample{Pos: vmath.V(1, 0), At: at(16)})

	s := NewParticleSet(cfg.MaxParticles)
	assert.Equal(t, 0, s.Spawn(h, vmath.V(1, 0), 1, cfg, seeded()))
	assert.Equal(t, 0, s.Len())
}

func TestSpawnCount(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		speed float64
		want  int
	}{
		{0, 0},
		{2, 0},  // threshold is exclusive
		{10, 0}, // above threshold but floor(10/20) is zero
		{20, 1},
		{39.9, 1},
		{40, 2},
		{500, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SpawnCount(tt.speed, cfg), "speed %v", tt.speed)
	}
}

func TestSpawnNeedsTwoSamples(t *testing.T) {
	cfg := DefaultConfig()
	h := NewPointerHistory(cfg.HistoryWindow, cfg.HistoryCap)
	h.Push(Sample{Pos: vmath.V(500, 0), At: at(0)})

	s := NewParticleSet(cfg.MaxParticles)
	assert.Equal(t, 0, s.Spawn(h, vmath.V(500, 0), 500, cfg, seeded()))
}

func TestParticleCapKeepsNewest(t *testing.T) {
	cfg := DefaultConfig()
	h := NewPointerHistory(cfg.HistoryWindow, cfg.HistoryCap)
	s := NewParticleSet(cfg.MaxParticles)
	rng := seeded()

	for i := 0; i < 100; i++ {
		h.Push(Sample{Pos: vmath.V(float64(i*100), 0), At: at(i)})
		s.Spawn(h, vmath.V(float64(i*100), 0), 100, cfg, rng)
		require.LessOrEqual(t, s.Len(), cfg.MaxParticles)
	}
	ps := s.Snapshot()
	require.Len(t, ps, 30)
	assert.Equal(t, vmath.V(9800, 0), ps[len(ps)-1].Origin, "newest particle survives the cap")
}

func TestParticleLifetime(t *testing.T) {
	cfg := DefaultConfig()
	s := NewParticleSet(cfg.MaxParticles)
	s.items = append(s.items, Particle{Origin: vmath.V(0, 0), Target: vmath.V(100, 0)})

	for i := 0; i < 18; i++ {
		s.Advance(cfg.ProgressStep)
	}
	require.Equal(t, 1, s.Len(), "alive after 18 frames")
	assert.InDelta(t, 90, s.Snapshot()[0].Position().X, 1e-9)

	for i := 0; i < 3; i++ {
		s.Advance(cfg.ProgressStep)
	}
	assert.Equal(t, 0, s.Len(), "removed by frame 21")
}

func TestParticleDrawClearsThenDrawsThreePrimitives(t *testing.T) {
	cfg := DefaultConfig()
	s := NewParticleSet(cfg.MaxParticles)
	s.items = append(s.items, Particle{}, Particle{Progress: 0.5})

	c := newRecordCanvas(100, 100)
	s.Draw(c)
	assert.Equal(t, []string{"clear", "line", "disc", "disc", "line", "disc", "disc"}, c.ops)
}

func TestFollowerConverges(t *testing.T) {
	f := NewFollower(vmath.V(0, 0), DefaultConfig().FollowerEase)
	target := vmath.V(300, 400)
	initial := vmath.Distance(f.Pos(), target)

	prev := initial
	for i := 0; i < 60; i++ {
		d := vmath.Distance(f.Step(target), target)
		require.Less(t, d, prev, "distance strictly decreases at frame %d", i)
		prev = d
	}
	assert.Less(t, prev, initial*0.01)
}

func TestAmbientNodesStayInBounds(t *testing.T) {
	cfg := DefaultConfig()
	const w, h = 320.0, 200.0
	f := NewAmbientField(cfg.NodeCount, w, h, cfg.NodeSpeed, seeded())
	require.Equal(t, 50, f.Len())

	for _, n := range f.Nodes() {
		assert.GreaterOrEqual(t, n.Vel.X, -cfg.NodeSpeed)
		assert.Less(t, n.Vel.X, cfg.NodeSpeed)
	}

	for step := 0; step < 5000; step++ {
		f.Step(w, h)
		for _, n := range f.Nodes() {
			require.GreaterOrEqual(t, n.Pos.X, -cfg.NodeSpeed)
			require.LessOrEqual(t, n.Pos.X, w+cfg.NodeSpeed)
			require.GreaterOrEqual(t, n.Pos.Y, -cfg.NodeSpeed)
			require.LessOrEqual(t, n.Pos.Y, h+cfg.NodeSpeed)
		}
	}
}

func TestAmbientNodesReturnAfterShrink(t *testing.T) {
	f := &AmbientField{nodes: []Node{{Pos: vmath.V(500, 50), Vel: vmath.V(0.1, 0)}}}
	f.Step(100, 100)
	assert.Less(t, f.nodes[0].Vel.X, 0.0, "escaped node heads back inside")
	before := f.nodes[0].Pos.X
	f.Step(100, 100)
	assert.Less(t, f.nodes[0].Pos.X, before)
}

func TestLinkOpacity(t *testing.T) {
	assert.InDelta(t, 0.11667, LinkOpacity(50, 0.2, 600), 1e-4)
	assert.Equal(t, 0.0, LinkOpacity(150, 0.2, 600))
}

func TestLinksUnorderedPairs(t *testing.T) {
	f := &AmbientField{nodes: []Node{
		{Pos: vmath.V(0, 0)},
		{Pos: vmath.V(30, 40)},
		{Pos: vmath.V(1000, 1000)},
	}}
	links := f.Links(120, 0.2, 600)
	require.Len(t, links, 1)
	assert.Equal(t, 0, links[0].A)
	assert.Equal(t, 1, links[0].B)
	assert.Equal(t, 50.0, links[0].Dist)

	// Distance exactly at the limit is not linked
	f.nodes[1].Pos = vmath.V(120, 0)
	assert.Empty(t, f.Links(120, 0.2, 600))
}

func TestAmbientDrawOrder(t *testing.T) {
	cfg := DefaultConfig()
	f := &AmbientField{nodes: []Node{{Pos: vmath.V(0, 0)}, {Pos: vmath.V(10, 0)}}}
	c := newRecordCanvas(100, 100)
	f.Draw(c, cfg)
	assert.Equal(t, []string{"fade", "line", "disc", "disc"}, c.ops)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.Palette = nil
	assert.True(t, errors.Is(bad.Validate(), ErrInvalidConfig))

	bad = DefaultConfig()
	bad.MaxParticles = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = DefaultConfig()
	bad.FollowerEase = 1.5
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	_, err := New(bad)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEffectMountStartsLoopsAndListeners(t *testing.T) {
	h := newHarness(t)
	assert.True(t, h.fx.Mounted())
	assert.Equal(t, 3, h.sched.Pending(), "ambient, particle and follower loops")
	p, r := h.bus.Listeners()
	assert.Equal(t, 1, p)
	assert.Equal(t, 1, r)
	assert.Len(t, h.fx.Nodes(), 50)

	err := h.fx.Mount(h.sched, h.bus, Surfaces{})
	assert.ErrorIs(t, err, ErrMounted)
}

func TestEffectUnmountReleasesEverything(t *testing.T) {
	h := newHarness(t)
	h.frames(3)

	h.fx.Unmount()
	h.fx.Unmount()

	assert.False(t, h.fx.Mounted())
	assert.Equal(t, 0, h.sched.Pending())
	p, r := h.bus.Listeners()
	assert.Equal(t, 0, p)
	assert.Equal(t, 0, r)

	h.ambient.reset()
	h.frames(3)
	h.move(100, 100, 0)
	assert.Empty(t, h.ambient.ops, "no drawing after unmount")
	assert.Equal(t, vmath.Vec2{}, h.fx.Live(), "no pointer handling after unmount")
}

func TestEffectRemountStartsFresh(t *testing.T) {
	h := newHarness(t)
	h.move(10, 10, 0)
	h.fx.Unmount()

	require.NoError(t, h.fx.Mount(h.sched, h.bus, Surfaces{Particles: h.particles}))
	assert.Empty(t, h.fx.History())
	assert.Empty(t, h.fx.Nodes(), "no ambient surface, no nodes")
	assert.Equal(t, 2, h.sched.Pending())
	h.fx.Unmount()
}

func TestEffectNilSurfacesAreSilent(t *testing.T) {
	sched := engine.NewFrameScheduler()
	bus := engine.NewEventBus()
	fx, err := New(DefaultConfig(), WithRand(seeded()))
	require.NoError(t, err)
	require.NoError(t, fx.Mount(sched, bus, Surfaces{}))

	assert.Equal(t, 1, sched.Pending(), "only the follower loop runs")
	bus.DispatchPointer(engine.PointerEvent{X: 0, Y: 0, At: at(0)})
	bus.DispatchPointer(engine.PointerEvent{X: 500, Y: 0, At: at(16)})
	bus.DispatchResize(10, 10)
	for i := 0; i < 5; i++ {
		sched.RunFrame(epoch)
	}
	assert.Empty(t, fx.Particles())
	assert.Greater(t, fx.FollowerPos().X, 0.0)

	fx.Unmount()
	assert.Equal(t, 0, sched.Pending())
}

func TestEffectPointerSpawnsAndAnimates(t *testing.T) {
	reg := status.NewRegistry()
	var spawned []int
	var observed []Observed
	h := newHarness(t,
		WithMetrics(reg),
		WithSpawnHook(func(n int, speed float64) { spawned = append(spawned, n) }),
		WithObserver(func(o Observed) { observed = append(observed, o) }),
	)

	h.move(0, 0, 0)
	h.move(100, 0, 20)
	h.move(101, 0, 25)

	assert.Equal(t, []int{2}, spawned, "only the fast event spawns")
	assert.Len(t, h.fx.Particles(), 2)
	assert.Len(t, observed, 2, "third event is within the publish interval")
	assert.Equal(t, vmath.V(101, 0), h.fx.Live())
	assert.Equal(t, int64(2), reg.Int(status.MetricSpawned).Load())
	assert.Equal(t, int64(50), reg.Int(status.MetricNodes).Load())
	assert.Equal(t, int64(1), reg.Int(status.MetricMounts).Load())

	h.frames(1)
	assert.Equal(t, 1, h.particles.clears, "particle canvas is hard cleared every frame")
	assert.Equal(t, 4, h.particles.discs)
	assert.Equal(t, 0, h.ambient.clears, "ambient canvas only fades")
	assert.Equal(t, "fade", h.ambient.ops[0])

	h.frames(25)
	assert.Empty(t, h.fx.Particles())
	assert.Equal(t, int64(0), reg.Int(status.MetricParticles).Load())
	assert.InDelta(t, 101, h.fx.FollowerPos().X, 101*0.2)

	h.fx.Unmount()
	assert.Equal(t, int64(0), reg.Int(status.MetricMounts).Load())
}

func TestEffectResizeResizesBothSurfaces(t *testing.T) {
	h := newHarness(t)
	h.bus.DispatchResize(400, 300)

	assert.Equal(t, 1, h.ambient.resizes)
	assert.Equal(t, 1, h.particles.resizes)
	w, hh := h.ambient.Size()
	assert.Equal(t, 400.0, w)
	assert.Equal(t, 300.0, hh)
	h.fx.Unmount()
}

func TestEffectsAreIsolated(t *testing.T) {
	sched := engine.NewFrameScheduler()
	bus := engine.NewEventBus()
	a, err := New(DefaultConfig(), WithRand(seeded()), WithID("a"))
	require.NoError(t, err)
	b, err := New(DefaultConfig(), WithRand(seeded()), WithID("b"))
	require.NoError(t, err)

	require.NoError(t, a.Mount(sched, bus, Surfaces{Particles: newRecordCanvas(100, 100)}))
	bus.DispatchPointer(engine.PointerEvent{X: 0, At: at(0)})
	bus.DispatchPointer(engine.PointerEvent{X: 500, At: at(16)})
	a.Unmount()

	require.NoError(t, b.Mount(sched, bus, Surfaces{Particles: newRecordCanvas(100, 100)}))
	assert.Equal(t, "b", b.ID())
	assert.Empty(t, b.Particles())
	assert.Len(t, a.Particles(), 2)
	b.Unmount()
}
