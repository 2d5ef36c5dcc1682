package parameter

import (
	"time"
)

// Ambient node graph
const (
	// AmbientNodeCount is the fixed number of drifting background nodes per view
	AmbientNodeCount = 50

	// AmbientNodeSpeed is the max absolute velocity component of a node (units/frame)
	AmbientNodeSpeed = 0.15

	// AmbientLinkDistance is the exclusive distance under which two nodes are linked (units)
	AmbientLinkDistance = 120.0

	// AmbientLinkOpacity is the link opacity at zero distance
	AmbientLinkOpacity = 0.2

	// AmbientLinkFalloff divides distance for the linear opacity falloff: 0.2 - d/600
	AmbientLinkFalloff = 600.0

	// AmbientFadeAlpha is the translucent repaint applied every frame (fading trails instead of a hard clear)
	AmbientFadeAlpha = 0.05

	// AmbientNodeRadius is the node disc radius (units)
	AmbientNodeRadius = 2.0

	// AmbientLayerOpacity is the opacity the ambient canvas is composited with
	AmbientLayerOpacity = 0.3

	// ParticleLayerOpacity is the opacity the particle canvas is composited with
	ParticleLayerOpacity = 1.0
)

// Pointer tracking & spawning
const (
	// PointerHistoryWindow drops samples older than this relative to the newest sample
	PointerHistoryWindow = 2000 * time.Millisecond

	// PointerHistoryCap is the max retained samples after window pruning
	PointerHistoryCap = 10

	// PointerPublishInterval throttles the externally observed pointer (~60Hz)
	PointerPublishInterval = 16 * time.Millisecond

	// SpawnSpeedThreshold is the exclusive speed (units/event) above which particles spawn
	SpawnSpeedThreshold = 2.0

	// SpawnSpeedDivisor converts speed to spawn quantity: floor(speed/20)
	SpawnSpeedDivisor = 20.0

	// SpawnMaxPerEvent clamps the quantity spawned by one pointer event
	SpawnMaxPerEvent = 2

	// SpawnJitter is the max per-axis target offset (units)
	SpawnJitter = 20.0
)

// Particles
const (
	// ParticleMaxCount caps the active particle list, oldest dropped first
	ParticleMaxCount = 30

	// ParticleProgressStep is the per-frame progress increment (~20 frame lifetime)
	ParticleProgressStep = 0.05

	// ParticleStrokeOpacity scales the origin-to-head stroke: (1-p)*0.4
	ParticleStrokeOpacity = 0.4

	// ParticleOriginOpacity scales the origin disc: (1-p)*0.6
	ParticleOriginOpacity = 0.6

	// ParticleHeadRadius is the glowing head disc radius (units)
	ParticleHeadRadius = 3.0

	// ParticleOriginRadius is the origin disc radius (units)
	ParticleOriginRadius = 2.0

	// ParticleGlowOpacity scales the glow tint spilled into neighbouring cells
	ParticleGlowOpacity = 0.35
)

// Follower cursor
const (
	// FollowerEase is the per-frame exponential smoothing factor toward the live pointer
	FollowerEase = 0.08

	// FollowerRadius is the follower ring radius at scale 1 (units)
	FollowerRadius = 16.0

	// FollowerHoverScale is the ring scale while the pointer is over an interactive region
	FollowerHoverScale = 1.8

	// FollowerScaleEase is the per-frame smoothing factor of the ring scale transition
	FollowerScaleEase = 0.2
)

// Glitch text
const (
	// GlitchRadius is the exclusive distance (units) within which text reacts to the pointer
	GlitchRadius = 60.0

	// GlitchAmplitude is the peak-to-peak vertical offset at full force (units)
	GlitchAmplitude = 4.0

	// GlitchDim is the opacity lost at full force
	GlitchDim = 0.5
)

// Audio cue
const (
	// AudioCueInterval rate limits spawn cues
	AudioCueInterval = 60 * time.Millisecond

	// AudioCueDuration is the length of one spawn cue
	AudioCueDuration = 40 * time.Millisecond

	// AudioBaseFrequency is the cue pitch at the spawn threshold (Hz)
	AudioBaseFrequency = 220.0

	// AudioMaxFrequency caps the cue pitch (Hz)
	AudioMaxFrequency = 880.0
)
