package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/trailfx/parameter"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundManager plays short cues for particle bursts
// Every method is safe before Initialize and after Cleanup
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	interval    time.Duration
	lastCue     time.Time
	now         func() time.Time
}

// NewSoundManager creates an uninitialized sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:    &beep.Mixer{},
		interval: parameter.AudioCueInterval,
		now:      time.Now,
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// 100ms buffer keeps latency under a few frames
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup drops every queued cue
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// beep has no speaker close; clearing the mixer silences output
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// PlayTrail queues a sweep whose pitch follows pointer speed
// At most one cue per interval; returns whether a cue was queued
func (sm *SoundManager) PlayTrail(speed float64) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}

	now := sm.now()
	if !sm.lastCue.IsZero() && now.Sub(sm.lastCue) < sm.interval {
		return false
	}
	sm.lastCue = now

	freq := CueFrequency(speed)
	cue := NewSweepGenerator(sampleRate, freq, freq*1.5, parameter.AudioCueDuration)
	speaker.Lock()
	sm.mixer.Add(cue)
	speaker.Unlock()
	return true
}

// Queued returns the number of cues still playing
func (sm *SoundManager) Queued() int {
	speaker.Lock()
	defer speaker.Unlock()
	return sm.mixer.Len()
}
