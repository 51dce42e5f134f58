package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat stores a float64 as its bit pattern in an atomic.Uint64
// Zero value is ready to use (represents 0.0)
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add atomically adds delta and returns the new value
func (f *AtomicFloat) Add(delta float64) float64 {
	return f.update(func(old float64) float64 { return old + delta })
}

// Smooth folds val into an exponential moving average with weight alpha
// The first sample replaces the zero value outright
func (f *AtomicFloat) Smooth(val, alpha float64) float64 {
	return f.update(func(old float64) float64 {
		if old == 0 {
			return val
		}
		return old + (val-old)*alpha
	})
}

func (f *AtomicFloat) update(fn func(float64) float64) float64 {
	for {
		old := f.bits.Load()
		next := fn(math.Float64frombits(old))
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
