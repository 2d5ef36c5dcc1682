package status

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Metric names shared by the effect, host and feed
const (
	MetricParticles   = "effect.particles"
	MetricSpawned     = "effect.spawned"
	MetricNodes       = "effect.nodes"
	MetricMounts      = "effect.mounts"
	MetricFrames      = "frame.count"
	MetricFeedClients = "feed.clients"
	MetricFeedDropped = "feed.dropped"
	MetricFrameMillis = "frame.ms"
)

// Registry is the central metrics facade
// Components cache pointers during init; hot loops write directly to atomics
type Registry struct {
	mu     sync.RWMutex
	ints   map[string]*atomic.Int64
	floats map[string]*AtomicFloat
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		ints:   make(map[string]*atomic.Int64),
		floats: make(map[string]*AtomicFloat),
	}
}

// Int returns the integer metric for key, creating if absent
func (r *Registry) Int(key string) *atomic.Int64 {
	return lookup(&r.mu, r.ints, key)
}

// Float returns the float metric for key, creating if absent
func (r *Registry) Float(key string) *AtomicFloat {
	return lookup(&r.mu, r.floats, key)
}

// lookup is a read-locked fast path with double-checked creation
func lookup[T any](mu *sync.RWMutex, m map[string]*T, key string) *T {
	mu.RLock()
	if ptr, ok := m[key]; ok {
		mu.RUnlock()
		return ptr
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if ptr, ok := m[key]; ok {
		return ptr
	}
	ptr := new(T)
	m[key] = ptr
	return ptr
}

// Count returns total metrics across all types
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ints) + len(r.floats)
}

// Format renders every metric as "key=value" in sorted key order
func (r *Registry) Format() string {
	r.mu.RLock()
	parts := make([]string, 0, len(r.ints)+len(r.floats))
	for k, v := range r.ints {
		parts = append(parts, fmt.Sprintf("%s=%d", k, v.Load()))
	}
	for k, v := range r.floats {
		parts = append(parts, fmt.Sprintf("%s=%.1f", k, v.Get()))
	}
	r.mu.RUnlock()

	sort.Strings(parts)
	return strings.Join(parts, " ")
}
