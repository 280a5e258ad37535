package handlers

import (
	"context"
	"math/rand/v2"
	"time"
)

// Simulator supplies the randomness behind the demo endpoints (processing
// delays, outcome selection, cache behavior) so tests can substitute
// deterministic implementations.
type Simulator interface {
	// Delay sleeps for a duration in [min, max], returning early if ctx is
	// cancelled. The chosen duration is returned either way.
	Delay(ctx context.Context, min, max time.Duration) time.Duration
	// Chance reports true with probability p.
	Chance(p float64) bool
	// Pick returns one of the options uniformly. Repeating an option skews
	// the draw accordingly.
	Pick(options ...string) string
	// IntBetween returns a uniform int in [min, max].
	IntBetween(min, max int) int
}

// RandomSimulator is the production Simulator backed by math/rand and real
// sleeps.
type RandomSimulator struct{}

func (RandomSimulator) Delay(ctx context.Context, min, max time.Duration) time.Duration {
	d := min
	if max > min {
		d += time.Duration(rand.Int64N(int64(max-min) + 1))
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
	return d
}

func (RandomSimulator) Chance(p float64) bool {
	return rand.Float64() < p
}

func (RandomSimulator) Pick(options ...string) string {
	return options[rand.IntN(len(options))]
}

func (RandomSimulator) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.IntN(max-min+1)
}
