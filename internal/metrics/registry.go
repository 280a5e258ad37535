package metrics

import (
	"fmt"
	"sort"
	"sync"
)

// Kind identifies the instrument kind of a registered metric.
type Kind string

const (
	KindCounter   Kind = "counter"
	KindGauge     Kind = "gauge"
	KindHistogram Kind = "histogram"
)

// family holds the declaration for one metric name and all series
// instantiated under it. Structural changes (creating a series) are guarded
// by the family mutex; value updates go through the series' own atomics, so
// scrapes and hot-path updates never contend on family state.
type family struct {
	name      string
	kind      Kind
	help      string
	labelKeys []string
	buckets   []float64

	mu     sync.RWMutex
	series map[string]any    // signature -> *Counter | *Gauge | *Histogram
	labels map[string]Labels // signature -> stored label values
}

// Registry owns the set of registered metrics for one process. The zero
// value is not usable; construct with NewRegistry. A Registry is created at
// startup and lives for the process lifetime; series are never evicted.
type Registry struct {
	mu       sync.RWMutex
	families map[string]*family
	order    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{families: make(map[string]*family)}
}

// RegisterCounter declares a counter metric.
func (r *Registry) RegisterCounter(name, help string, labelKeys ...string) error {
	return r.register(name, KindCounter, help, labelKeys, nil)
}

// RegisterGauge declares a gauge metric.
func (r *Registry) RegisterGauge(name, help string, labelKeys ...string) error {
	return r.register(name, KindGauge, help, labelKeys, nil)
}

// RegisterHistogram declares a histogram metric with the given ascending
// bucket upper bounds. Observations above the last bound land only in the
// implicit +Inf bucket.
func (r *Registry) RegisterHistogram(name, help string, buckets []float64, labelKeys ...string) error {
	if len(buckets) == 0 {
		return fmt.Errorf("%w: %q declared without buckets", ErrInvalidBuckets, name)
	}
	for i := 1; i < len(buckets); i++ {
		if buckets[i] <= buckets[i-1] {
			return fmt.Errorf("%w: %q bound %g follows %g", ErrInvalidBuckets, name, buckets[i], buckets[i-1])
		}
	}
	bounds := make([]float64, len(buckets))
	copy(bounds, buckets)
	return r.register(name, KindHistogram, help, labelKeys, bounds)
}

// register declares a metric. Registering an already-declared name is a
// no-op when kind and label-key set are identical, and fails with
// ErrDuplicateMetric otherwise. Help text is not part of the identity.
func (r *Registry) register(name string, kind Kind, help string, labelKeys []string, buckets []float64) error {
	keys := make([]string, len(labelKeys))
	copy(keys, labelKeys)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.families[name]; ok {
		if existing.kind == kind && sameKeySet(existing.labelKeys, keys) && sameBounds(existing.buckets, buckets) {
			return nil
		}
		return fmt.Errorf("%w: %q is a %s with labels %v", ErrDuplicateMetric, name, existing.kind, existing.labelKeys)
	}

	r.families[name] = &family{
		name:      name,
		kind:      kind,
		help:      help,
		labelKeys: keys,
		buckets:   buckets,
		series:    make(map[string]any),
		labels:    make(map[string]Labels),
	}
	r.order = append(r.order, name)
	return nil
}

// Counter returns the counter series for the given label values, creating
// it on first use.
func (r *Registry) Counter(name string, labels Labels) (*Counter, error) {
	s, err := r.getOrCreateSeries(name, KindCounter, labels)
	if err != nil {
		return nil, err
	}
	return s.(*Counter), nil
}

// Gauge returns the gauge series for the given label values, creating it
// on first use.
func (r *Registry) Gauge(name string, labels Labels) (*Gauge, error) {
	s, err := r.getOrCreateSeries(name, KindGauge, labels)
	if err != nil {
		return nil, err
	}
	return s.(*Gauge), nil
}

// Histogram returns the histogram series for the given label values,
// creating it on first use.
func (r *Registry) Histogram(name string, labels Labels) (*Histogram, error) {
	s, err := r.getOrCreateSeries(name, KindHistogram, labels)
	if err != nil {
		return nil, err
	}
	return s.(*Histogram), nil
}

// getOrCreateSeries resolves one series under a registered metric. The
// fast path is lock-free on the registry and read-locked on the family;
// first observations of a new label set take the family write lock with a
// double check so concurrent callers cannot race to create duplicates.
func (r *Registry) getOrCreateSeries(name string, kind Kind, labels Labels) (any, error) {
	r.mu.RLock()
	fam := r.families[name]
	r.mu.RUnlock()

	if fam == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	if fam.kind != kind {
		return nil, fmt.Errorf("%w: %q is a %s", ErrKindMismatch, name, fam.kind)
	}
	if !labels.matchesKeys(fam.labelKeys) {
		return nil, fmt.Errorf("%w: %q declares %v, got %v", ErrLabelMismatch, name, fam.labelKeys, labelNames(labels))
	}

	sig := labels.signature()

	fam.mu.RLock()
	s, ok := fam.series[sig]
	fam.mu.RUnlock()
	if ok {
		return s, nil
	}

	fam.mu.Lock()
	defer fam.mu.Unlock()
	if s, ok := fam.series[sig]; ok {
		return s, nil
	}

	var created any
	switch kind {
	case KindCounter:
		created = &Counter{}
	case KindGauge:
		created = &Gauge{}
	case KindHistogram:
		created = newHistogram(fam.buckets)
	}
	fam.series[sig] = created
	fam.labels[sig] = labels.clone()
	return created, nil
}

// Sample is one collected series state. Value carries counter and gauge
// readings; Histogram is set for histogram series instead.
type Sample struct {
	Name      string
	Kind      Kind
	Help      string
	Labels    Labels
	Value     float64
	Histogram *HistogramSnapshot
}

// Collect snapshots every series ever created. Each series is read
// atomically, but no consistency across series is guaranteed.
func (r *Registry) Collect() []Sample {
	r.mu.RLock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	fams := make([]*family, 0, len(names))
	for _, n := range names {
		fams = append(fams, r.families[n])
	}
	r.mu.RUnlock()

	var out []Sample
	for _, fam := range fams {
		out = append(out, fam.collect()...)
	}
	return out
}

func (f *family) collect() []Sample {
	f.mu.RLock()
	sigs := make([]string, 0, len(f.series))
	for sig := range f.series {
		sigs = append(sigs, sig)
	}
	sort.Strings(sigs)

	out := make([]Sample, 0, len(sigs))
	for _, sig := range sigs {
		sample := Sample{
			Name:   f.name,
			Kind:   f.kind,
			Help:   f.help,
			Labels: f.labels[sig].clone(),
		}
		switch s := f.series[sig].(type) {
		case *Counter:
			sample.Value = s.Value()
		case *Gauge:
			sample.Value = s.Value()
		case *Histogram:
			snap := s.Snapshot()
			sample.Histogram = &snap
		}
		out = append(out, sample)
	}
	f.mu.RUnlock()
	return out
}

func sameKeySet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := sortedKeys(a)
	bs := sortedKeys(b)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func sameBounds(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func labelNames(l Labels) []string {
	names := make([]string, 0, len(l))
	for k := range l {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
