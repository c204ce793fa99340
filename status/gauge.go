package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 gauge kept as IEEE bits, the zero value reads 0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(v float64) { f.bits.Store(math.Float64bits(v)) }
func (f *AtomicFloat) Get() float64  { return math.Float64frombits(f.bits.Load()) }

// Add returns the value after adding delta
func (f *AtomicFloat) Add(delta float64) float64 {
	return f.update(func(cur float64) (float64, bool) { return cur + delta, true })
}

// SetMax raises the gauge to v if v is larger, returning the resulting peak
func (f *AtomicFloat) SetMax(v float64) float64 {
	return f.update(func(cur float64) (float64, bool) { return v, v > cur })
}

func (f *AtomicFloat) update(fn func(cur float64) (float64, bool)) float64 {
	for {
		old := f.bits.Load()
		cur := math.Float64frombits(old)
		next, ok := fn(cur)
		if !ok {
			return cur
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
