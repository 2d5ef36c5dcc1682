package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventBusDispatchOrder(t *testing.T) {
	b := NewEventBus()
	var order []int

	b.OnPointerMove(func(ev PointerEvent) { order = append(order, 1) })
	b.OnPointerMove(func(ev PointerEvent) { order = append(order, 2) })

	b.DispatchPointer(PointerEvent{X: 1, Y: 2, At: frameEpoch})
	assert.Equal(t, []int{1, 2}, order)

	p, r := b.Listeners()
	assert.Equal(t, 2, p)
	assert.Equal(t, 0, r)
}

func TestEventBusUnsubscribeIdempotent(t *testing.T) {
	b := NewEventBus()
	calls := 0
	unsub := b.OnPointerMove(func(ev PointerEvent) { calls++ })
	keep := 0
	b.OnPointerMove(func(ev PointerEvent) { keep++ })

	unsub()
	unsub()

	b.DispatchPointer(PointerEvent{})
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, keep)

	p, _ := b.Listeners()
	assert.Equal(t, 1, p)
}

func TestEventBusUnsubscribeDuringDispatch(t *testing.T) {
	b := NewEventBus()
	var unsubSecond func()
	secondCalls := 0

	b.OnPointerMove(func(ev PointerEvent) { unsubSecond() })
	unsubSecond = b.OnPointerMove(func(ev PointerEvent) { secondCalls++ })

	b.DispatchPointer(PointerEvent{})
	assert.Equal(t, 0, secondCalls, "removed listener must not run later in the same dispatch")
}

func TestEventBusResize(t *testing.T) {
	b := NewEventBus()
	var gotW, gotH float64
	unsub := b.OnResize(func(w, h float64) { gotW, gotH = w, h })

	b.DispatchResize(640, 480)
	assert.Equal(t, 640.0, gotW)
	assert.Equal(t, 480.0, gotH)

	unsub()
	b.DispatchResize(1, 1)
	assert.Equal(t, 640.0, gotW)

	_, r := b.Listeners()
	assert.Equal(t, 0, r)
}

func TestMockTimeProvider(t *testing.T) {
	mock := NewMockTimeProvider(frameEpoch)
	assert.Equal(t, frameEpoch, mock.Now())

	got := mock.Advance(16 * time.Millisecond)
	assert.Equal(t, frameEpoch.Add(16*time.Millisecond), got)
	assert.Equal(t, got, mock.Now())

	mock.SetTime(frameEpoch)
	assert.Equal(t, frameEpoch, mock.Now())

	var _ TimeProvider = NewMonotonicTimeProvider()
	var _ TimeProvider = mock
}
