package metrics

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Counter is a monotonically increasing accumulator. The value is stored as
// float64 bits in an atomic word so fractional deltas are supported and
// concurrent adds never lose updates.
type Counter struct {
	bits atomic.Uint64
}

// Inc adds 1 to the counter.
func (c *Counter) Inc() {
	c.add(1)
}

// Add adds delta to the counter. Negative deltas violate the monotonicity
// contract and are rejected with ErrInvalidDelta, leaving the value
// unchanged.
func (c *Counter) Add(delta float64) error {
	if delta < 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidDelta, delta)
	}
	c.add(delta)
	return nil
}

// Value returns the current accumulated value.
func (c *Counter) Value() float64 {
	return math.Float64frombits(c.bits.Load())
}

func (c *Counter) add(delta float64) {
	for {
		old := c.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if c.bits.CompareAndSwap(old, next) {
			return
		}
	}
}
