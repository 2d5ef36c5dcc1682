package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/trailfx/audio"
	"github.com/lixenwraith/trailfx/config"
	"github.com/lixenwraith/trailfx/effect"
	"github.com/lixenwraith/trailfx/engine"
	"github.com/lixenwraith/trailfx/feed"
	"github.com/lixenwraith/trailfx/parameter"
	"github.com/lixenwraith/trailfx/render"
	"github.com/lixenwraith/trailfx/status"
	"github.com/lixenwraith/trailfx/view"
)

// ErrUnknownView is returned when the configured view slug is not in the catalog
var ErrUnknownView = errors.New("unknown view")

// App is the terminal host: it owns the screen, the frame scheduler, the event bus,
// the two effect layers and the currently mounted effect
//
// Goroutines:
//   - poller: blocks on the screen for input and forwards it to the main loop
//   - main loop: single owner of every piece of render and effect state
//   - feed: optional websocket server, fed by the effect observer through the hub
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	screen tcell.Screen
	clock  engine.TimeProvider
	rng    *rand.Rand

	sched *engine.FrameScheduler
	bus   *engine.EventBus
	reg   *status.Registry
	sound *audio.SoundManager
	hub   *feed.Hub

	orch      *render.Orchestrator
	state     *view.State
	ambient   *render.Layer
	particles *render.Layer
	effect    *effect.Effect

	width, height int
	buttons       tcell.ButtonMask
	frame         uint64

	closeOnce sync.Once
}

// Option configures an App at construction
type Option func(*App)

// WithScreen uses s instead of the real terminal
func WithScreen(s tcell.Screen) Option {
	return func(a *App) { a.screen = s }
}

// WithClock sets the time source for frames and pointer timestamps
func WithClock(tp engine.TimeProvider) Option {
	return func(a *App) { a.clock = tp }
}

// WithRand sets the random source shared by effects and glitch text
func WithRand(rng *rand.Rand) Option {
	return func(a *App) { a.rng = rng }
}

// New creates a host for cfg; the screen is not touched until Run
func New(cfg *config.Config, log *zap.Logger, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if view.Index(cfg.View) < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, cfg.View)
	}
	if log == nil {
		log = zap.NewNop()
	}

	a := &App{
		cfg:   cfg,
		log:   log,
		sched: engine.NewFrameScheduler(),
		bus:   engine.NewEventBus(),
		reg:   status.NewRegistry(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.clock == nil {
		a.clock = engine.NewMonotonicTimeProvider()
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.Audio {
		a.sound = audio.NewSoundManager()
	}
	if cfg.Feed.Addr != "" {
		a.hub = feed.NewHub(log.Named("feed"), a.reg)
	}
	return a, nil
}

// Registry exposes the live metrics
func (a *App) Registry() *status.Registry {
	return a.reg
}

// Effect returns the currently mounted effect, nil before Run
func (a *App) Effect() *effect.Effect {
	return a.effect
}

// Active returns the slug of the current view
func (a *App) Active() string {
	if a.state == nil {
		return a.cfg.View
	}
	return a.state.Page().Slug
}

// Run takes over the terminal until ctx is cancelled, the user quits or a goroutine fails
func (a *App) Run(ctx context.Context) error {
	if err := a.setup(); err != nil {
		a.shutdown()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, parameter.EventChannelSize)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.poll(gctx, events)
	})
	g.Go(func() error {
		defer func() {
			// Cancel first so the poller treats the closed screen as shutdown
			cancel()
			a.shutdown()
		}()
		return a.loop(gctx, events)
	})
	if a.hub != nil {
		g.Go(func() error {
			return a.hub.Serve(gctx, a.cfg.Feed.Addr)
		})
	}

	return g.Wait()
}

// setup initialises the screen and mounts the configured view
func (a *App) setup() error {
	if a.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		a.screen = s
	}
	if err := a.screen.Init(); err != nil {
		a.screen = nil
		return fmt.Errorf("init screen: %w", err)
	}
	a.screen.EnableMouse(tcell.MouseMotionEvents)
	a.screen.HideCursor()

	a.width, a.height = a.screen.Size()
	uw, uh := units(a.width, a.height)
	a.orch = render.NewOrchestrator(a.screen, a.width, a.height)
	a.ambient = render.NewLayer(uw, uh, parameter.CellWidth, parameter.CellHeight)
	a.particles = render.NewLayer(uw, uh, parameter.CellWidth, parameter.CellHeight)

	active := view.Index(a.cfg.View)
	a.state = view.NewState(view.Pages(), active, parameter.CellWidth, parameter.CellHeight)
	a.state.Relayout(a.width, a.height)

	a.orch.Register(render.NewLayerRenderer(a.ambient, parameter.AmbientLayerOpacity), render.PriorityAmbient)
	a.orch.Register(view.NewPageRenderer(a.state, a.rng), render.PriorityContent)
	a.orch.Register(render.NewLayerRenderer(a.particles, parameter.ParticleLayerOpacity), render.PriorityParticle)
	a.orch.Register(view.NewNavRenderer(a.state), render.PriorityUI)
	a.orch.Register(view.NewCursorRenderer(a.state), render.PriorityCursor)
	a.orch.Register(view.NewStatusRenderer(a.state, a.reg, a.cfg.Debug), render.PriorityDebug)

	if a.sound != nil {
		if err := a.sound.Initialize(); err != nil {
			a.log.Warn("audio disabled", zap.Error(err))
		}
	}

	a.log.Info("host started",
		zap.Int("width", a.width),
		zap.Int("height", a.height),
		zap.Duration("frame", a.cfg.FrameInterval()))
	return a.mount(active)
}

// mount creates and mounts a fresh effect for page i
func (a *App) mount(i int) error {
	page := a.state.Pages[i]
	cfg := page.EffectConfig(a.cfg.Effect.Apply(effect.DefaultConfig()))
	slug := page.Slug

	eff, err := effect.New(cfg,
		effect.WithRand(a.rng),
		effect.WithLogger(a.log),
		effect.WithMetrics(a.reg),
		effect.WithObserver(func(o effect.Observed) { a.publish(slug, o) }),
		effect.WithSpawnHook(a.onSpawn),
	)
	if err != nil {
		return fmt.Errorf("view %s: %w", slug, err)
	}

	a.ambient.Clear()
	a.particles.Clear()
	if err := eff.Mount(a.sched, a.bus, effect.Surfaces{Ambient: a.ambient, Particles: a.particles}); err != nil {
		return fmt.Errorf("view %s: %w", slug, err)
	}
	a.effect = eff
	a.state.Pointer = eff

	a.log.Debug("view mounted", zap.String("view", slug), zap.String("effect", eff.ID()))
	return nil
}

// switchView unmounts the current effect and mounts page i
func (a *App) switchView(i int) error {
	if i == a.state.Active || !a.state.SetActive(i) {
		return nil
	}
	if a.effect != nil {
		a.effect.Unmount()
		a.effect = nil
	}
	return a.mount(i)
}

func (a *App) publish(slug string, o effect.Observed) {
	if a.hub == nil {
		return
	}
	particles := int(a.reg.Int(status.MetricParticles).Load())
	a.hub.Publish(feed.PointerMessage(slug, o.Pos.X, o.Pos.Y, o.At, particles))
}

func (a *App) onSpawn(_ int, speed float64) {
	if a.sound != nil {
		a.sound.PlayTrail(speed)
	}
}

// poll forwards screen events until the screen is finalised
func (a *App) poll(ctx context.Context, events chan<- tcell.Event) error {
	defer func() {
		if r := recover(); r != nil {
			crash("EVENT POLLER CRASHED", r)
		}
	}()

	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.New("screen closed")
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}

// loop is the main select loop; returning ends the run
func (a *App) loop(ctx context.Context, events <-chan tcell.Event) error {
	defer func() {
		if r := recover(); r != nil {
			crash("TRAILFX CRASHED", r)
		}
	}()

	ticker := time.NewTicker(a.cfg.FrameInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			quit, err := a.handleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				a.log.Info("quit requested")
				return nil
			}

		case <-ticker.C:
			a.renderFrame(a.clock.Now())
		}
	}
}

// handleEvent applies one input event, reporting whether the user asked to quit
func (a *App) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		return false, a.handleMouse(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		a.resize(w, h)
	}
	return false, nil
}

func (a *App) handleKey(ev *tcell.EventKey) (bool, error) {
	n := len(a.state.Pages)
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyTab:
		return false, a.switchView((a.state.Active + 1) % n)
	case tcell.KeyBacktab:
		return false, a.switchView((a.state.Active + n - 1) % n)
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == 'q':
			return true, nil
		case r >= '1' && r < '1'+rune(n):
			return false, a.switchView(int(r - '1'))
		}
	}
	return false, nil
}

// handleMouse feeds motion to the bus at the cell centre and follows clicks on regions
func (a *App) handleMouse(ev *tcell.EventMouse) error {
	cx, cy := ev.Position()
	a.bus.DispatchPointer(engine.PointerEvent{
		X:  (float64(cx) + 0.5) * parameter.CellWidth,
		Y:  (float64(cy) + 0.5) * parameter.CellHeight,
		At: a.clock.Now(),
	})

	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && a.buttons&tcell.Button1 == 0
	a.buttons = buttons
	if !pressed {
		return nil
	}

	region, ok := a.state.Layout.Hit(cx, cy)
	if !ok {
		return nil
	}
	if i := view.Index(region.Target); i >= 0 {
		return a.switchView(i)
	}
	return nil
}

func (a *App) resize(w, h int) {
	if w == a.width && h == a.height {
		return
	}
	a.width, a.height = w, h
	a.orch.Resize(w, h)
	a.bus.DispatchResize(units(w, h))
	a.state.Relayout(w, h)
	a.log.Debug("resized", zap.Int("width", w), zap.Int("height", h))
}

// renderFrame runs every scheduled callback then composites the frame
func (a *App) renderFrame(now time.Time) {
	start := time.Now()
	a.sched.RunFrame(now)

	a.frame++
	a.orch.RenderFrame(render.RenderContext{
		Frame:        a.frame,
		Now:          now,
		ScreenWidth:  a.width,
		ScreenHeight: a.height,
		CellWidth:    parameter.CellWidth,
		CellHeight:   parameter.CellHeight,
	})

	a.reg.Int(status.MetricFrames).Store(int64(a.frame))
	a.reg.Float(status.MetricFrameMillis).Smooth(float64(time.Since(start).Microseconds())/1000, parameter.FrameMillisSmoothing)
}

// shutdown unmounts the effect and releases the screen; safe to call more than once
func (a *App) shutdown() {
	a.closeOnce.Do(func() {
		if a.effect != nil {
			a.effect.Unmount()
		}
		if a.hub != nil {
			a.hub.Close()
		}
		if a.sound != nil {
			a.sound.Cleanup()
		}
		if a.screen != nil {
			a.screen.Fini()
		}
		a.log.Info("host stopped", zap.Uint64("frames", a.frame))
	})
}

// units converts a cell grid to unit space
func units(w, h int) (float64, float64) {
	return float64(w) * parameter.CellWidth, float64(h) * parameter.CellHeight
}

// crash resets the terminal and exits, used from goroutines that own no error path
func crash(title string, r any) {
	EmergencyReset(os.Stdout)
	// \r\n for raw mode
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s: %v\x1b[0m\r\n", title, r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}
