package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var frameEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFrameSchedulerOneShot(t *testing.T) {
	s := NewFrameScheduler()
	calls := 0
	s.RequestFrame(func(now time.Time) { calls++ })
	assert.Equal(t, 1, s.Pending())

	s.RunFrame(frameEpoch)
	s.RunFrame(frameEpoch)

	assert.Equal(t, 1, calls, "request must fire exactly once")
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, uint64(2), s.Frames())
}

func TestFrameSchedulerOrderAndDeferral(t *testing.T) {
	s := NewFrameScheduler()
	var order []string

	s.RequestFrame(func(now time.Time) {
		order = append(order, "a")
		// Requested mid-frame: must wait for the next frame
		s.RequestFrame(func(now time.Time) { order = append(order, "c") })
	})
	s.RequestFrame(func(now time.Time) { order = append(order, "b") })

	s.RunFrame(frameEpoch)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, s.Pending())

	s.RunFrame(frameEpoch)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestFrameSchedulerCancel(t *testing.T) {
	s := NewFrameScheduler()
	fired := map[string]bool{}

	h := s.RequestFrame(func(now time.Time) { fired["cancelled"] = true })
	s.RequestFrame(func(now time.Time) { fired["kept"] = true })
	s.CancelFrame(h)
	s.CancelFrame(h)      // repeated cancel
	s.CancelFrame(424242) // unknown handle

	s.RunFrame(frameEpoch)
	assert.False(t, fired["cancelled"])
	assert.True(t, fired["kept"])
}

func TestFrameSchedulerCancelSiblingInSameFrame(t *testing.T) {
	s := NewFrameScheduler()
	var second FrameHandle
	secondRan := false

	s.RequestFrame(func(now time.Time) { s.CancelFrame(second) })
	second = s.RequestFrame(func(now time.Time) { secondRan = true })

	s.RunFrame(frameEpoch)
	assert.False(t, secondRan)
}

func TestFrameSchedulerPassesFrameTime(t *testing.T) {
	s := NewFrameScheduler()
	var got time.Time
	s.RequestFrame(func(now time.Time) { got = now })
	at := frameEpoch.Add(16 * time.Millisecond)
	s.RunFrame(at)
	assert.Equal(t, at, got)
}

func TestFrameLoopRepeatsUntilStopped(t *testing.T) {
	s := NewFrameScheduler()
	loop := NewFrameLoop(s, func(now time.Time) {})
	loop.Start()
	loop.Start() // second start must not double-arm
	assert.Equal(t, 1, s.Pending())

	for i := 0; i < 5; i++ {
		s.RunFrame(frameEpoch)
	}
	assert.Equal(t, uint64(5), loop.Steps())
	assert.True(t, loop.Running())
	assert.Equal(t, 1, s.Pending(), "loop re-arms itself every frame")

	loop.Stop()
	assert.False(t, loop.Running())
	assert.Equal(t, 0, s.Pending(), "stop cancels the outstanding request")

	s.RunFrame(frameEpoch)
	assert.Equal(t, uint64(5), loop.Steps())

	// Stop is idempotent and a stopped loop cannot restart
	loop.Stop()
	loop.Start()
	assert.Equal(t, 0, s.Pending())
}

func TestFrameLoopStopFromInsideStep(t *testing.T) {
	s := NewFrameScheduler()
	var loop *FrameLoop
	loop = NewFrameLoop(s, func(now time.Time) {
		if loop.Steps() == 3 {
			loop.Stop()
		}
	})
	loop.Start()

	for i := 0; i < 10; i++ {
		s.RunFrame(frameEpoch)
	}
	assert.Equal(t, uint64(3), loop.Steps())
	assert.Equal(t, 0, s.Pending())
}

func TestFrameLoopsAreIndependent(t *testing.T) {
	s := NewFrameScheduler()
	a := NewFrameLoop(s, func(now time.Time) {})
	b := NewFrameLoop(s, func(now time.Time) {})
	a.Start()
	b.Start()

	s.RunFrame(frameEpoch)
	a.Stop()
	s.RunFrame(frameEpoch)
	s.RunFrame(frameEpoch)

	assert.Equal(t, uint64(1), a.Steps())
	assert.Equal(t, uint64(3), b.Steps())
	assert.Equal(t, 1, s.Pending())
}
