package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat holds a float64 gauge such as the last commit's overlap ratio
// The render goroutine reads it while the loop goroutine writes; the value is
// kept as IEEE-754 bits so both sides stay lock-free. Zero value reads 0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(v float64) { f.bits.Store(math.Float64bits(v)) }

func (f *AtomicFloat) Get() float64 { return math.Float64frombits(f.bits.Load()) }
