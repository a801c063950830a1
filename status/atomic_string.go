package status

import "sync/atomic"

// MaxStringLen fits a canonical UUID, the longest value published (run ids)
const MaxStringLen = 36

// AtomicString publishes short labels: the current run id and phase name
// Longer values are cut at MaxStringLen. Zero value reads ""
type AtomicString struct {
	p atomic.Pointer[string]
}

func (s *AtomicString) Store(v string) {
	v = v[:min(len(v), MaxStringLen)]
	s.p.Store(&v)
}

func (s *AtomicString) Load() string {
	p := s.p.Load()
	if p == nil {
		return ""
	}
	return *p
}
