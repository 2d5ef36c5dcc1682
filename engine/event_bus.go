package engine

import (
	"time"
)

// PointerEvent is a pointer-move sample in unit space
type PointerEvent struct {
	X, Y float64
	At   time.Time
}

// PointerListener receives pointer-move events
type PointerListener func(ev PointerEvent)

// ResizeListener receives the new viewport size in units
type ResizeListener func(width, height float64)

type pointerEntry struct {
	id uint64
	fn PointerListener
}

type resizeEntry struct {
	id uint64
	fn ResizeListener
}

// EventBus dispatches host input to registered listeners
//
// Architecture:
//   - Single-threaded dispatch from the host main loop
//   - Listeners are invoked in registration order
//   - Registration returns an idempotent unsubscribe function; a listener
//     removed during dispatch is not invoked afterwards
type EventBus struct {
	pointer []pointerEntry
	resize  []resizeEntry
	nextID  uint64
}

// NewEventBus creates an empty bus
func NewEventBus() *EventBus {
	return &EventBus{}
}

// OnPointerMove registers fn for pointer-move events
func (b *EventBus) OnPointerMove(fn PointerListener) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.pointer = append(b.pointer, pointerEntry{id: id, fn: fn})
	return func() {
		for i, e := range b.pointer {
			if e.id == id {
				b.pointer = append(b.pointer[:i:i], b.pointer[i+1:]...)
				return
			}
		}
	}
}

// OnResize registers fn for viewport resize events
func (b *EventBus) OnResize(fn ResizeListener) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.resize = append(b.resize, resizeEntry{id: id, fn: fn})
	return func() {
		for i, e := range b.resize {
			if e.id == id {
				b.resize = append(b.resize[:i:i], b.resize[i+1:]...)
				return
			}
		}
	}
}

// DispatchPointer delivers ev to every pointer listener
func (b *EventBus) DispatchPointer(ev PointerEvent) {
	// Snapshot: unsubscribe copies on write, so ranging the current slice is stable
	for _, e := range b.pointer {
		if b.hasPointer(e.id) {
			e.fn(ev)
		}
	}
}

// DispatchResize delivers the new size to every resize listener
func (b *EventBus) DispatchResize(width, height float64) {
	for _, e := range b.resize {
		if b.hasResize(e.id) {
			e.fn(width, height)
		}
	}
}

func (b *EventBus) hasPointer(id uint64) bool {
	for _, e := range b.pointer {
		if e.id == id {
			return true
		}
	}
	return false
}

func (b *EventBus) hasResize(id uint64) bool {
	for _, e := range b.resize {
		if e.id == id {
			return true
		}
	}
	return false
}

// Listeners returns the number of registered pointer and resize listeners
func (b *EventBus) Listeners() (pointer, resize int) {
	return len(b.pointer), len(b.resize)
}
