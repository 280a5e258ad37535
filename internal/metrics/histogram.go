package metrics

import "sync"

// Histogram tracks the distribution of observed values across a fixed set
// of cumulative buckets. Each bucket counts observations less than or equal
// to its upper bound; an implicit +Inf bucket counts everything. Negative
// observations are permitted (the running sum may go negative), matching
// the permissive semantics of the exposition format.
type Histogram struct {
	bounds []float64

	mu     sync.Mutex
	counts []uint64 // counts[i] <= bounds[i]; counts[len(bounds)] is +Inf
	sum    float64
	count  uint64
}

func newHistogram(bounds []float64) *Histogram {
	return &Histogram{
		bounds: bounds,
		counts: make([]uint64, len(bounds)+1),
	}
}

// Observe records a single value.
func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sum += v
	h.count++
	for i, bound := range h.bounds {
		if v <= bound {
			h.counts[i]++
		}
	}
	h.counts[len(h.bounds)]++
}

// HistogramSnapshot is a point-in-time copy of a histogram's state.
type HistogramSnapshot struct {
	Bounds []float64
	// Counts holds cumulative per-bucket counts; the final element is the
	// +Inf bucket and always equals Count.
	Counts []uint64
	Sum    float64
	Count  uint64
}

// Snapshot returns a consistent copy of the histogram state.
func (h *Histogram) Snapshot() HistogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	counts := make([]uint64, len(h.counts))
	copy(counts, h.counts)
	return HistogramSnapshot{
		Bounds: h.bounds,
		Counts: counts,
		Sum:    h.sum,
		Count:  h.count,
	}
}
