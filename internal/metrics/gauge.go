package metrics

import (
	"math"
	"sync/atomic"
)

// Gauge holds a signed value that may move in either direction. Set is
// last-write-wins; Add is an atomic read-modify-write, which makes it safe
// for shared in-flight accounting where concurrent deltas must all be
// preserved (a read-then-Set pattern would lose updates).
type Gauge struct {
	bits atomic.Uint64
}

// Set replaces the current value.
func (g *Gauge) Set(v float64) {
	g.bits.Store(math.Float64bits(v))
}

// Add atomically adds delta (which may be negative) to the current value.
func (g *Gauge) Add(delta float64) {
	for {
		old := g.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if g.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// Inc adds 1.
func (g *Gauge) Inc() { g.Add(1) }

// Dec subtracts 1.
func (g *Gauge) Dec() { g.Add(-1) }

// Value returns the current value.
func (g *Gauge) Value() float64 {
	return math.Float64frombits(g.bits.Load())
}
