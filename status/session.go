package status

import "sync/atomic"

// Metric keys written by Session
const (
	KeyRuns         = "session.runs"
	KeyPlaced       = "session.placed"
	KeyCuts         = "session.cuts"
	KeyPerfects     = "session.perfects"
	KeyMisses       = "session.misses"
	KeyFragments    = "session.fragments"
	KeyScore        = "run.score"
	KeyBest         = "session.best"
	KeyOverlapRatio = "run.overlap_ratio"
	KeyRunID        = "run.id"
	KeyPhase        = "run.phase"
	KeyMuted        = "audio.muted"
)

// Session caches the metric pointers for one play session
// Counters are never persisted; a new process starts at zero
type Session struct {
	Runs         *atomic.Int64
	Placed       *atomic.Int64
	Cuts         *atomic.Int64
	Perfects     *atomic.Int64
	Misses       *atomic.Int64
	Fragments    *atomic.Int64
	Score        *atomic.Int64
	Best         *atomic.Int64
	OverlapRatio *AtomicFloat
	RunID        *AtomicString
	Phase        *AtomicString
	Muted        *atomic.Bool
}

// NewSession registers the session metrics in reg
func NewSession(reg *Registry) *Session {
	return &Session{
		Runs:         reg.Ints.Get(KeyRuns),
		Placed:       reg.Ints.Get(KeyPlaced),
		Cuts:         reg.Ints.Get(KeyCuts),
		Perfects:     reg.Ints.Get(KeyPerfects),
		Misses:       reg.Ints.Get(KeyMisses),
		Fragments:    reg.Ints.Get(KeyFragments),
		Score:        reg.Ints.Get(KeyScore),
		Best:         reg.Ints.Get(KeyBest),
		OverlapRatio: reg.Floats.Get(KeyOverlapRatio),
		RunID:        reg.Strings.Get(KeyRunID),
		Phase:        reg.Strings.Get(KeyPhase),
		Muted:        reg.Bools.Get(KeyMuted),
	}
}

// BeginRun resets per-run values
func (s *Session) BeginRun(runID string) {
	s.Runs.Add(1)
	s.Score.Store(0)
	s.OverlapRatio.Set(1)
	s.RunID.Store(runID)
}

// SetScore publishes the current score
func (s *Session) SetScore(score int) {
	s.Score.Store(int64(score))
}

// RaiseBest lifts Best to score if exceeded
func (s *Session) RaiseBest(score int) {
	v := int64(score)
	for {
		best := s.Best.Load()
		if v <= best || s.Best.CompareAndSwap(best, v) {
			return
		}
	}
}
