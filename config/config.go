// Package config loads trailfx settings from YAML with environment overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/trailfx/effect"
	"github.com/lixenwraith/trailfx/parameter"
)

// DefaultPath is read when no --config flag is given; a missing file yields defaults
const DefaultPath = "trailfx.yaml"

// Environment overrides
const (
	EnvDebug    = "TRAILFX_DEBUG"
	EnvFeedAddr = "TRAILFX_FEED_ADDR"
	EnvAudio    = "TRAILFX_AUDIO"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config holds the complete trailfx configuration
type Config struct {
	Debug  bool         `yaml:"debug"`
	View   string       `yaml:"view"`
	FPS    int          `yaml:"fps"`
	Audio  bool         `yaml:"audio"`
	Feed   FeedConfig   `yaml:"feed"`
	Log    LogConfig    `yaml:"log"`
	Effect EffectConfig `yaml:"effect"`
}

// FeedConfig configures the websocket pointer feed, empty Addr disables it
type FeedConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig configures the debug log file
type LogConfig struct {
	Dir       string `yaml:"dir"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

// EffectConfig is the engine tuning shared by every view
type EffectConfig struct {
	FadeAlpha       float64  `yaml:"fade_alpha"`
	NodeCount       int      `yaml:"node_count"`
	NodeSpeed       float64  `yaml:"node_speed"`
	LinkDistance    float64  `yaml:"link_distance"`
	LinkOpacity     float64  `yaml:"link_opacity"`
	LinkFalloff     float64  `yaml:"link_falloff"`
	SpeedThreshold  float64  `yaml:"speed_threshold"`
	SpawnDivisor    float64  `yaml:"spawn_divisor"`
	MaxSpawn        int      `yaml:"max_spawn"`
	SpawnJitter     float64  `yaml:"spawn_jitter"`
	MaxParticles    int      `yaml:"max_particles"`
	ProgressStep    float64  `yaml:"progress_step"`
	HistoryWindow   Duration `yaml:"history_window"`
	HistoryCap      int      `yaml:"history_cap"`
	PublishInterval Duration `yaml:"publish_interval"`
	FollowerEase    float64  `yaml:"follower_ease"`
}

// Duration is a time.Duration written as a Go duration string in YAML
type Duration time.Duration

// UnmarshalYAML parses strings such as "16ms" or "2s"
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration string
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	fx := effect.DefaultConfig()
	return &Config{
		View: "home",
		FPS:  int(time.Second / parameter.FrameUpdateInterval),
		Log: LogConfig{
			Dir:       parameter.LogDir,
			MaxSizeMB: parameter.MaxLogSize / (1024 * 1024),
		},
		Effect: EffectConfig{
			FadeAlpha:       fx.FadeAlpha,
			NodeCount:       fx.NodeCount,
			NodeSpeed:       fx.NodeSpeed,
			LinkDistance:    fx.LinkDistance,
			LinkOpacity:     fx.LinkOpacity,
			LinkFalloff:     fx.LinkFalloff,
			SpeedThreshold:  fx.SpeedThreshold,
			SpawnDivisor:    fx.SpawnDivisor,
			MaxSpawn:        fx.MaxSpawn,
			SpawnJitter:     fx.SpawnJitter,
			MaxParticles:    fx.MaxParticles,
			ProgressStep:    fx.ProgressStep,
			HistoryWindow:   Duration(fx.HistoryWindow),
			HistoryCap:      fx.HistoryCap,
			PublishInterval: Duration(fx.PublishInterval),
			FollowerEase:    fx.FollowerEase,
		},
	}
}

// Load reads path over the defaults and applies environment overrides
// A missing file is not an error
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = b
	}
	if v := os.Getenv(EnvAudio); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAudio, err)
		}
		c.Audio = b
	}
	if v := os.Getenv(EnvFeedAddr); v != "" {
		c.Feed.Addr = v
	}
	return nil
}

// Validate checks host settings and the effect tuning
func (c *Config) Validate() error {
	if c.FPS <= 0 || c.FPS > 1000/int(parameter.MinFrameInterval/time.Millisecond) {
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("%w: log max_size_mb %d", ErrInvalid, c.Log.MaxSizeMB)
	}
	if err := c.Effect.Apply(effect.DefaultConfig()).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// FrameInterval returns the frame period for the configured rate
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// Apply returns base with the shared tuning replaced; palette and colors stay per view
func (e EffectConfig) Apply(base effect.Config) effect.Config {
	base.FadeAlpha = e.FadeAlpha
	base.NodeCount = e.NodeCount
	base.NodeSpeed = e.NodeSpeed
	base.LinkDistance = e.LinkDistance
	base.LinkOpacity = e.LinkOpacity
	base.LinkFalloff = e.LinkFalloff
	base.SpeedThreshold = e.SpeedThreshold
	base.SpawnDivisor = e.SpawnDivisor
	base.MaxSpawn = e.MaxSpawn
	base.SpawnJitter = e.SpawnJitter
	base.MaxParticles = e.MaxParticles
	base.ProgressStep = e.ProgressStep
	base.HistoryWindow = time.Duration(e.HistoryWindow)
	base.HistoryCap = e.HistoryCap
	base.PublishInterval = time.Duration(e.PublishInterval)
	base.FollowerEase = e.FollowerEase
	return base
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
