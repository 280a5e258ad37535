package metrics

import (
	"sync"
	"testing"
)

func TestGaugeSetAndAdd(t *testing.T) {
	var g Gauge
	g.Set(42)
	if got := g.Value(); got != 42 {
		t.Errorf("after Set(42): %g", got)
	}
	g.Add(-2.5)
	if got := g.Value(); got != 39.5 {
		t.Errorf("after Add(-2.5): %g", got)
	}
	g.Inc()
	g.Dec()
	g.Dec()
	if got := g.Value(); got != 38.5 {
		t.Errorf("after Inc/Dec/Dec: %g", got)
	}
	g.Set(-7)
	if got := g.Value(); got != -7 {
		t.Errorf("gauge must accept negative values: %g", got)
	}
}

// Concurrent deltas on a shared gauge must all be preserved; this is the
// contract the in-flight request accounting depends on.
func TestGaugeConcurrentDeltaAdd(t *testing.T) {
	var g Gauge
	const workers = 16
	const perWorker = 500

	var wg sync.WaitGroup
	wg.Add(2 * workers)
	for range workers {
		go func() {
			defer wg.Done()
			for range perWorker {
				g.Add(1)
			}
		}()
		go func() {
			defer wg.Done()
			for range perWorker {
				g.Add(-1)
			}
		}()
	}
	wg.Wait()

	if got := g.Value(); got != 0 {
		t.Errorf("Value() = %g, want 0 (lost updates)", got)
	}
}
