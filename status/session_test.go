package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_BestTracksMaximum(t *testing.T) {
	s := NewSession(NewRegistry())

	s.BeginRun("a")
	s.SetScore(4)
	s.RaiseBest(4)
	s.RaiseBest(9)
	s.BeginRun("b")
	s.SetScore(3)
	s.RaiseBest(3)

	assert.Equal(t, int64(3), s.Score.Load())
	assert.Equal(t, int64(9), s.Best.Load())
	assert.Equal(t, int64(2), s.Runs.Load())
	assert.Equal(t, "b", s.RunID.Load())
	assert.Equal(t, 1.0, s.OverlapRatio.Get())
}

func TestSession_ConcurrentRaiseBest(t *testing.T) {
	s := NewSession(NewRegistry())

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			s.RaiseBest(v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(50), s.Best.Load())
}

func TestRegistry_SnapshotAndSharedPointers(t *testing.T) {
	reg := NewRegistry()
	s := NewSession(reg)
	s.Cuts.Add(3)
	s.Muted.Store(true)
	s.OverlapRatio.Set(0.5)

	// Same key resolves to the same pointer
	assert.Same(t, s.Cuts, reg.Ints.Get(KeyCuts))

	snap := reg.Snapshot()
	assert.Equal(t, "3", snap[KeyCuts])
	assert.Equal(t, "true", snap[KeyMuted])
	assert.Equal(t, "0.500", snap[KeyOverlapRatio])
	assert.Equal(t, reg.TotalCount(), len(snap))
}

func TestAtomicString_Truncates(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())
	long := "0123456789012345678901234567890123456789"
	s.Store(long)
	assert.Equal(t, long[:MaxStringLen], s.Load())
}

func TestMetricMap_ConcurrentGetRegistersOnce(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()

	ptrs := make([]*AtomicFloat, 16)
	var wg sync.WaitGroup
	for i := range ptrs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ptrs[i] = m.Get("run.overlap_ratio")
		}(i)
	}
	wg.Wait()

	for _, p := range ptrs[1:] {
		assert.Same(t, ptrs[0], p)
	}
	assert.Equal(t, 1, m.Count())
	assert.Zero(t, ptrs[0].Get())
}
