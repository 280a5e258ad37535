package metrics

import (
	"errors"
	"sync"
	"testing"
)

func TestRegisterDuplicateSemantics(t *testing.T) {
	tests := []struct {
		name     string
		register func(r *Registry) error
		again    func(r *Registry) error
		wantErr  error
	}{
		{
			name:     "identical counter declaration is idempotent",
			register: func(r *Registry) error { return r.RegisterCounter("ops_total", "ops", "status") },
			again:    func(r *Registry) error { return r.RegisterCounter("ops_total", "ops", "status") },
			wantErr:  nil,
		},
		{
			name:     "same keys in different order is idempotent",
			register: func(r *Registry) error { return r.RegisterCounter("ops_total", "ops", "a", "b") },
			again:    func(r *Registry) error { return r.RegisterCounter("ops_total", "ops", "b", "a") },
			wantErr:  nil,
		},
		{
			name:     "different label keys conflict",
			register: func(r *Registry) error { return r.RegisterCounter("ops_total", "ops", "status") },
			again:    func(r *Registry) error { return r.RegisterCounter("ops_total", "ops", "outcome") },
			wantErr:  ErrDuplicateMetric,
		},
		{
			name:     "different kind conflicts",
			register: func(r *Registry) error { return r.RegisterCounter("ops_total", "ops") },
			again:    func(r *Registry) error { return r.RegisterGauge("ops_total", "ops") },
			wantErr:  ErrDuplicateMetric,
		},
		{
			name:     "different buckets conflict",
			register: func(r *Registry) error { return r.RegisterHistogram("lat", "lat", []float64{1, 2}) },
			again:    func(r *Registry) error { return r.RegisterHistogram("lat", "lat", []float64{1, 2, 3}) },
			wantErr:  ErrDuplicateMetric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			if err := tt.register(r); err != nil {
				t.Fatalf("first registration failed: %v", err)
			}
			err := tt.again(r)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("second registration: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterHistogramBucketValidation(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterHistogram("lat", "lat", nil); !errors.Is(err, ErrInvalidBuckets) {
		t.Errorf("empty buckets: got %v, want ErrInvalidBuckets", err)
	}
	if err := r.RegisterHistogram("lat", "lat", []float64{0.5, 0.5}); !errors.Is(err, ErrInvalidBuckets) {
		t.Errorf("non-ascending buckets: got %v, want ErrInvalidBuckets", err)
	}
}

func TestGetOrCreateSeriesErrors(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterCounter("ops_total", "ops", "status"); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Counter("missing_total", nil); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("unknown metric: got %v, want ErrUnknownMetric", err)
	}
	if _, err := r.Counter("ops_total", Labels{"outcome": "ok"}); !errors.Is(err, ErrLabelMismatch) {
		t.Errorf("wrong label key: got %v, want ErrLabelMismatch", err)
	}
	if _, err := r.Counter("ops_total", Labels{"status": "ok", "extra": "x"}); !errors.Is(err, ErrLabelMismatch) {
		t.Errorf("extra label key: got %v, want ErrLabelMismatch", err)
	}
	if _, err := r.Counter("ops_total", nil); !errors.Is(err, ErrLabelMismatch) {
		t.Errorf("missing labels: got %v, want ErrLabelMismatch", err)
	}
	if _, err := r.Gauge("ops_total", Labels{"status": "ok"}); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("kind mismatch: got %v, want ErrKindMismatch", err)
	}
}

func TestSeriesIdentityStability(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterCounter("ops_total", "ops", "status", "region"); err != nil {
		t.Fatal(err)
	}

	first, err := r.Counter("ops_total", Labels{"status": "ok", "region": "eu"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Counter("ops_total", Labels{"region": "eu", "status": "ok"})
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("same label set must resolve to the same series instance")
	}

	other, err := r.Counter("ops_total", Labels{"status": "ok", "region": "us"})
	if err != nil {
		t.Fatal(err)
	}
	if first == other {
		t.Error("different label sets must be distinct series")
	}
}

func TestConcurrentSeriesCreation(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterCounter("ops_total", "ops", "status"); err != nil {
		t.Fatal(err)
	}

	const workers = 32
	results := make([]*Counter, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		go func() {
			defer wg.Done()
			c, err := r.Counter("ops_total", Labels{"status": "ok"})
			if err != nil {
				t.Error(err)
				return
			}
			c.Inc()
			results[i] = c
		}()
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent first observations created duplicate series")
		}
	}
	if got := results[0].Value(); got != workers {
		t.Errorf("counter value = %g, want %d (lost updates)", got, workers)
	}

	samples := r.Collect()
	if len(samples) != 1 {
		t.Fatalf("Collect returned %d series, want 1", len(samples))
	}
}

func TestCollectSnapshotsAllKinds(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterCounter("reqs_total", "requests", "path"); err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterGauge("inflight", "in flight"); err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterHistogram("lat_seconds", "latency", []float64{0.5, 1}); err != nil {
		t.Fatal(err)
	}

	c, _ := r.Counter("reqs_total", Labels{"path": "/orders"})
	c.Inc()
	c.Inc()
	g, _ := r.Gauge("inflight", nil)
	g.Set(3)
	h, _ := r.Histogram("lat_seconds", nil)
	h.Observe(0.2)

	samples := r.Collect()
	if len(samples) != 3 {
		t.Fatalf("Collect returned %d samples, want 3", len(samples))
	}

	byName := map[string]Sample{}
	for _, s := range samples {
		byName[s.Name] = s
	}
	if got := byName["reqs_total"]; got.Value != 2 || got.Kind != KindCounter || got.Labels["path"] != "/orders" {
		t.Errorf("counter sample = %+v", got)
	}
	if got := byName["inflight"]; got.Value != 3 || got.Kind != KindGauge {
		t.Errorf("gauge sample = %+v", got)
	}
	hist := byName["lat_seconds"]
	if hist.Histogram == nil || hist.Histogram.Count != 1 || hist.Histogram.Sum != 0.2 {
		t.Errorf("histogram sample = %+v", hist.Histogram)
	}
}
