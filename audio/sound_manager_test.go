package audio

import (
	"testing"
	"time"

	"github.com/lixenwraith/trailfx/parameter"
)

// TestSoundManagerGracefulDegradation verifies audio operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	if sm.PlayTrail(500) {
		t.Error("PlayTrail should not queue before initialization")
	}
	sm.Cleanup()
	sm.Cleanup()
}

// TestSoundManagerInitialization verifies sound manager can be initialized and cleaned up
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager()

	// Speaker initialization may fail in CI/test environments without audio devices
	err := sm.Initialize()
	if err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}

	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}
	sm.Cleanup()

	if sm.PlayTrail(500) {
		t.Error("PlayTrail should not queue after cleanup")
	}
}

// TestSoundManagerRateLimit verifies at most one cue per interval
func TestSoundManagerRateLimit(t *testing.T) {
	sm := NewSoundManager()
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return clock }
	// Skip the device: cues land in the mixer without a speaker draining it
	sm.initialized = true

	if !sm.PlayTrail(100) {
		t.Fatal("first cue should play")
	}
	clock = clock.Add(parameter.AudioCueInterval / 2)
	if sm.PlayTrail(100) {
		t.Error("cue inside the interval should be dropped")
	}
	clock = clock.Add(parameter.AudioCueInterval)
	if !sm.PlayTrail(100) {
		t.Error("cue after the interval should play")
	}
	if got := sm.Queued(); got != 2 {
		t.Errorf("Queued() = %d, want 2", got)
	}
}

// TestCueFrequency verifies pitch rises with speed and stays within range
func TestCueFrequency(t *testing.T) {
	if got := CueFrequency(0); got != parameter.AudioBaseFrequency {
		t.Errorf("CueFrequency(0) = %v, want base", got)
	}
	if CueFrequency(100) <= CueFrequency(40) {
		t.Error("faster pointer should give a higher cue")
	}
	if got := CueFrequency(1e6); got != parameter.AudioMaxFrequency {
		t.Errorf("CueFrequency(1e6) = %v, want cap", got)
	}
}

// TestSweepGeneratorFinite verifies the sweep ends after its duration and stays in range
func TestSweepGeneratorFinite(t *testing.T) {
	g := NewSweepGenerator(sampleRate, 220, 330, 40*time.Millisecond)
	want := sampleRate.N(40 * time.Millisecond)

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := g.Stream(buf)
		if !ok {
			break
		}
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %v", total+i, buf[i][0])
			}
			if buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d is not mono", total+i)
			}
		}
		total += n
		if total > want*2 {
			t.Fatal("sweep did not terminate")
		}
	}
	if total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
	if g.Err() != nil {
		t.Errorf("Err() = %v", g.Err())
	}
}
