package status

import (
	"maps"
	"slices"
	"sync"
)

// MetricMap names the session metrics of one kind (counters, flags, gauges, labels)
// Session resolves its pointers once at construction and updates them without
// touching the map; the map lock only guards registration and snapshots
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

func (m *MetricMap[T]) lookup(key string) (*T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.items[key]
	return p, ok
}

// Get returns the metric registered under key, registering a zero value first
// Repeated calls with the same key share one pointer
func (m *MetricMap[T]) Get(key string) *T {
	if p, ok := m.lookup(key); ok {
		return p
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.items[key]; ok {
		return p
	}
	p := new(T)
	m.items[key] = p
	return p
}

// Range visits metrics by key in sorted order, as printed by headless --metrics
func (m *MetricMap[T]) Range(fn func(key string, p *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, k := range slices.Sorted(maps.Keys(m.items)) {
		fn(k, m.items[k])
	}
}

func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
