package hoststats

import "math/rand/v2"

// ResourceCounter reports the current count of an external resource, e.g.
// active database connections.
type ResourceCounter interface {
	Count() int
}

// SimulatedConnections fakes an active database connection count by
// drawing uniformly from [Min, Max]. It stands in for a real pool until
// the demo grows one.
type SimulatedConnections struct {
	Min int
	Max int
}

func (s SimulatedConnections) Count() int {
	if s.Max <= s.Min {
		return s.Min
	}
	return s.Min + rand.IntN(s.Max-s.Min+1)
}

// FixedCount is a deterministic ResourceCounter for tests.
type FixedCount int

func (f FixedCount) Count() int { return int(f) }
