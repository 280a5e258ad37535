// Package metrics implements the in-process metric registry for the demo
// service: label-dimensioned counters, gauges, and histograms together with
// a Prometheus text exposition encoder.
//
// # Model
//
// A metric is declared once on a Registry with a name, a kind, and a fixed
// set of label keys. Each distinct combination of label values under a name
// is one series, created lazily on first use and kept for the registry's
// lifetime. Handlers obtain a bound series and mutate it directly:
//
//	c, err := reg.Counter("business_operations_total", metrics.Labels{
//	    "operation_type": "order_processing",
//	    "status":         "success",
//	})
//	if err != nil { ... }
//	c.Inc()
//
// Series mutations are individually atomic; a scrape reads whatever values
// are current without blocking writers. There is no cross-series snapshot
// consistency, matching pull-based collection semantics.
//
// # Exposition
//
// Registry.Expose renders every series in the plaintext exposition format:
// a # HELP/# TYPE header per metric followed by one sample line per series,
// with histograms expanded into cumulative _bucket lines (including the
// implicit +Inf bucket), _sum, and _count. Output order is deterministic:
// metrics in registration order, series sorted by label signature.
package metrics
