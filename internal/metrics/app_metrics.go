package metrics

// Standard metric names for the demo service.
const (
	nameRequestsTotal     = "http_requests_total"
	nameRequestDuration   = "http_request_duration_seconds"
	nameActiveRequests    = "http_active_requests"
	nameErrorsTotal       = "errors_total"
	nameBusinessOps       = "business_operations_total"
	nameUserRegistrations = "user_registrations_total"
	nameOrderProcessing   = "order_processing_duration_seconds"
	nameDBQueryDuration   = "database_query_duration_seconds"
	nameCacheHits         = "cache_hits_total"
	nameCacheMisses       = "cache_misses_total"
	nameCPUUsage          = "system_cpu_usage_percent"
	nameMemoryUsage       = "system_memory_usage_percent"
	nameDiskUsage         = "system_disk_usage_percent"
	nameDBConnections     = "database_connections_active"
)

var (
	requestDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	orderDurationBuckets   = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	dbQueryBuckets         = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1}
)

// App is the service's standard instrument set over one Registry. All
// declarations happen in NewApp, so the labeled accessors cannot fail at
// request time and return bound series directly.
type App struct {
	reg *Registry
}

// NewApp declares the standard metric set on reg. Registration is
// idempotent, so constructing two Apps over the same registry is safe.
func NewApp(reg *Registry) (*App, error) {
	decls := []func() error{
		func() error {
			return reg.RegisterCounter(nameRequestsTotal, "Total number of HTTP requests", "method", "path", "status_code")
		},
		func() error {
			return reg.RegisterHistogram(nameRequestDuration, "HTTP request duration in seconds", requestDurationBuckets, "method", "path")
		},
		func() error { return reg.RegisterGauge(nameActiveRequests, "Number of requests currently in flight") },
		func() error { return reg.RegisterCounter(nameErrorsTotal, "Total number of errors", "error_type") },
		func() error {
			return reg.RegisterCounter(nameBusinessOps, "Total business operations", "operation_type", "status")
		},
		func() error { return reg.RegisterCounter(nameUserRegistrations, "Total user registrations") },
		func() error {
			return reg.RegisterHistogram(nameOrderProcessing, "Order processing time in seconds", orderDurationBuckets)
		},
		func() error {
			return reg.RegisterHistogram(nameDBQueryDuration, "Database query duration in seconds", dbQueryBuckets)
		},
		func() error { return reg.RegisterCounter(nameCacheHits, "Cache hits", "cache_type") },
		func() error { return reg.RegisterCounter(nameCacheMisses, "Cache misses", "cache_type") },
		func() error { return reg.RegisterGauge(nameCPUUsage, "System CPU usage percentage") },
		func() error { return reg.RegisterGauge(nameMemoryUsage, "System memory usage percentage") },
		func() error { return reg.RegisterGauge(nameDiskUsage, "System disk usage percentage") },
		func() error { return reg.RegisterGauge(nameDBConnections, "Active database connections") },
	}
	for _, register := range decls {
		if err := register(); err != nil {
			return nil, err
		}
	}
	return &App{reg: reg}, nil
}

// Registry returns the underlying registry, e.g. for the scrape handler.
func (a *App) Registry() *Registry { return a.reg }

func (a *App) RequestsTotal(method, path, statusCode string) *Counter {
	return mustCounter(a.reg.Counter(nameRequestsTotal, Labels{"method": method, "path": path, "status_code": statusCode}))
}

func (a *App) RequestDuration(method, path string) *Histogram {
	return mustHistogram(a.reg.Histogram(nameRequestDuration, Labels{"method": method, "path": path}))
}

func (a *App) ActiveRequests() *Gauge {
	return mustGauge(a.reg.Gauge(nameActiveRequests, nil))
}

func (a *App) Errors(errorType string) *Counter {
	return mustCounter(a.reg.Counter(nameErrorsTotal, Labels{"error_type": errorType}))
}

func (a *App) BusinessOps(operationType, status string) *Counter {
	return mustCounter(a.reg.Counter(nameBusinessOps, Labels{"operation_type": operationType, "status": status}))
}

func (a *App) UserRegistrations() *Counter {
	return mustCounter(a.reg.Counter(nameUserRegistrations, nil))
}

func (a *App) OrderProcessing() *Histogram {
	return mustHistogram(a.reg.Histogram(nameOrderProcessing, nil))
}

func (a *App) DBQueryDuration() *Histogram {
	return mustHistogram(a.reg.Histogram(nameDBQueryDuration, nil))
}

func (a *App) CacheHits(cacheType string) *Counter {
	return mustCounter(a.reg.Counter(nameCacheHits, Labels{"cache_type": cacheType}))
}

func (a *App) CacheMisses(cacheType string) *Counter {
	return mustCounter(a.reg.Counter(nameCacheMisses, Labels{"cache_type": cacheType}))
}

func (a *App) CPUUsage() *Gauge    { return mustGauge(a.reg.Gauge(nameCPUUsage, nil)) }
func (a *App) MemoryUsage() *Gauge { return mustGauge(a.reg.Gauge(nameMemoryUsage, nil)) }
func (a *App) DiskUsage() *Gauge   { return mustGauge(a.reg.Gauge(nameDiskUsage, nil)) }

func (a *App) DBConnections() *Gauge { return mustGauge(a.reg.Gauge(nameDBConnections, nil)) }

// Totals aggregates live request and error series across all label
// combinations, for the analytics endpoint.
type Totals struct {
	Requests          float64
	Errors            float64
	ActiveRequests    float64
	AvgRequestSeconds float64
}

// Totals sums the current request, error, and duration series. Like any
// scrape, the result is eventually consistent across series.
func (a *App) Totals() Totals {
	var t Totals
	var durSum float64
	var durCount uint64
	for _, s := range a.reg.Collect() {
		switch s.Name {
		case nameRequestsTotal:
			t.Requests += s.Value
		case nameErrorsTotal:
			t.Errors += s.Value
		case nameActiveRequests:
			t.ActiveRequests = s.Value
		case nameRequestDuration:
			if s.Histogram != nil {
				durSum += s.Histogram.Sum
				durCount += s.Histogram.Count
			}
		}
	}
	if durCount > 0 {
		t.AvgRequestSeconds = durSum / float64(durCount)
	}
	return t
}

// The must helpers only fire on label keys that disagree with the
// declarations above, which is a bug in this file, not a runtime state.
func mustCounter(c *Counter, err error) *Counter {
	if err != nil {
		panic(err)
	}
	return c
}

func mustGauge(g *Gauge, err error) *Gauge {
	if err != nil {
		panic(err)
	}
	return g
}

func mustHistogram(h *Histogram, err error) *Histogram {
	if err != nil {
		panic(err)
	}
	return h
}
