package effect

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/trailfx/parameter"
	"github.com/lixenwraith/trailfx/render"
)

var (
	// ErrInvalidConfig is wrapped by every Validate failure
	ErrInvalidConfig = errors.New("invalid effect config")

	// ErrMounted is returned when mounting an effect that is already mounted
	ErrMounted = errors.New("effect already mounted")
)

// Config parametrizes one effect instance; each view supplies its own palette
type Config struct {
	Palette   []render.RGB
	NodeColor render.RGB
	FadeColor render.RGB
	FadeAlpha float64

	NodeCount    int
	NodeSpeed    float64
	LinkDistance float64
	LinkOpacity  float64
	LinkFalloff  float64

	SpeedThreshold float64
	SpawnDivisor   float64
	MaxSpawn       int
	SpawnJitter    float64
	MaxParticles   int
	ProgressStep   float64

	HistoryWindow   time.Duration
	HistoryCap      int
	PublishInterval time.Duration

	FollowerEase float64
}

// DefaultPalette is the home page trail palette
var DefaultPalette = []render.RGB{
	render.MustHex("#a855f7"),
	render.MustHex("#ec4899"),
	render.MustHex("#3b82f6"),
	render.MustHex("#8b5cf6"),
	render.MustHex("#f59e0b"),
}

// DefaultConfig returns the reference tuning
func DefaultConfig() Config {
	return Config{
		Palette:   append([]render.RGB(nil), DefaultPalette...),
		NodeColor: render.MustHex("#8b5cf6"),
		FadeColor: render.RgbAmbientFader,
		FadeAlpha: parameter.AmbientFadeAlpha,

		NodeCount:    parameter.AmbientNodeCount,
		NodeSpeed:    parameter.AmbientNodeSpeed,
		LinkDistance: parameter.AmbientLinkDistance,
		LinkOpacity:  parameter.AmbientLinkOpacity,
		LinkFalloff:  parameter.AmbientLinkFalloff,

		SpeedThreshold: parameter.SpawnSpeedThreshold,
		SpawnDivisor:   parameter.SpawnSpeedDivisor,
		MaxSpawn:       parameter.SpawnMaxPerEvent,
		SpawnJitter:    parameter.SpawnJitter,
		MaxParticles:   parameter.ParticleMaxCount,
		ProgressStep:   parameter.ParticleProgressStep,

		HistoryWindow:   parameter.PointerHistoryWindow,
		HistoryCap:      parameter.PointerHistoryCap,
		PublishInterval: parameter.PointerPublishInterval,

		FollowerEase: parameter.FollowerEase,
	}
}

// Validate rejects configurations the engine cannot run with
func (c Config) Validate() error {
	switch {
	case len(c.Palette) == 0:
		return fmt.Errorf("%w: empty palette", ErrInvalidConfig)
	case c.NodeCount < 0:
		return fmt.Errorf("%w: node count %d", ErrInvalidConfig, c.NodeCount)
	case c.LinkFalloff <= 0:
		return fmt.Errorf("%w: link falloff %v", ErrInvalidConfig, c.LinkFalloff)
	case c.SpawnDivisor <= 0:
		return fmt.Errorf("%w: spawn divisor %v", ErrInvalidConfig, c.SpawnDivisor)
	case c.MaxSpawn < 0:
		return fmt.Errorf("%w: max spawn %d", ErrInvalidConfig, c.MaxSpawn)
	case c.MaxParticles <= 0:
		return fmt.Errorf("%w: max particles %d", ErrInvalidConfig, c.MaxParticles)
	case c.ProgressStep <= 0:
		return fmt.Errorf("%w: progress step %v", ErrInvalidConfig, c.ProgressStep)
	case c.HistoryWindow <= 0:
		return fmt.Errorf("%w: history window %v", ErrInvalidConfig, c.HistoryWindow)
	case c.HistoryCap < 2:
		return fmt.Errorf("%w: history cap %d", ErrInvalidConfig, c.HistoryCap)
	case c.PublishInterval < 0:
		return fmt.Errorf("%w: publish interval %v", ErrInvalidConfig, c.PublishInterval)
	case c.FollowerEase <= 0 || c.FollowerEase > 1:
		return fmt.Errorf("%w: follower ease %v", ErrInvalidConfig, c.FollowerEase)
	case c.FadeAlpha < 0 || c.FadeAlpha > 1:
		return fmt.Errorf("%w: fade alpha %v", ErrInvalidConfig, c.FadeAlpha)
	}
	return nil
}
