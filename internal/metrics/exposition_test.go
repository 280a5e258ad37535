package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpositionCounterEndToEnd(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterCounter("orders_total", "Processed orders", "status"))

	c, err := r.Counter("orders_total", Labels{"status": "success"})
	require.NoError(t, err)
	c.Inc()

	out := r.Render()
	assert.Contains(t, out, "# HELP orders_total Processed orders\n")
	assert.Contains(t, out, "# TYPE orders_total counter\n")
	assert.Contains(t, out, `orders_total{status="success"} 1`+"\n")
}

func TestExpositionHistogramEndToEnd(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterHistogram("request_seconds", "Request latency", []float64{0.1, 0.5, 1.0}))

	h, err := r.Histogram("request_seconds", nil)
	require.NoError(t, err)
	for _, v := range []float64{0.05, 0.3, 2.0} {
		h.Observe(v)
	}

	out := r.Render()
	assert.Contains(t, out, "# TYPE request_seconds histogram\n")
	assert.Contains(t, out, `request_seconds_bucket{le="0.1"} 1`+"\n")
	assert.Contains(t, out, `request_seconds_bucket{le="0.5"} 2`+"\n")
	assert.Contains(t, out, `request_seconds_bucket{le="1"} 2`+"\n")
	assert.Contains(t, out, `request_seconds_bucket{le="+Inf"} 3`+"\n")
	assert.Contains(t, out, "request_seconds_sum 2.35\n")
	assert.Contains(t, out, "request_seconds_count 3\n")
}

func TestExpositionLabeledHistogramCarriesLabels(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterHistogram("duration_seconds", "", []float64{1}, "method", "path"))

	h, err := r.Histogram("duration_seconds", Labels{"method": "GET", "path": "/orders"})
	require.NoError(t, err)
	h.Observe(0.5)

	out := r.Render()
	assert.Contains(t, out, `duration_seconds_bucket{method="GET",path="/orders",le="1"} 1`+"\n")
	assert.Contains(t, out, `duration_seconds_sum{method="GET",path="/orders"} 0.5`+"\n")
	assert.Contains(t, out, `duration_seconds_count{method="GET",path="/orders"} 1`+"\n")
}

func TestExpositionEscapesLabelValues(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterCounter("odd_total", "", "path"))

	c, err := r.Counter("odd_total", Labels{"path": "a\"b\\c\nd"})
	require.NoError(t, err)
	c.Inc()

	assert.Contains(t, r.Render(), `odd_total{path="a\"b\\c\nd"} 1`+"\n")
}

func TestExpositionDeterministicOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterGauge("z_gauge", ""))
	require.NoError(t, r.RegisterCounter("a_total", "", "k"))

	g, _ := r.Gauge("z_gauge", nil)
	g.Set(1)
	for _, v := range []string{"beta", "alpha"} {
		c, _ := r.Counter("a_total", Labels{"k": v})
		c.Inc()
	}

	out := r.Render()
	// Registration order for metrics, signature order for series.
	assert.Less(t, strings.Index(out, "z_gauge"), strings.Index(out, "a_total"))
	assert.Less(t, strings.Index(out, `k="alpha"`), strings.Index(out, `k="beta"`))
	assert.Equal(t, out, r.Render())
}

// The canonical text-format parser must accept everything we emit.
func TestExpositionCompatibleWithCanonicalParser(t *testing.T) {
	r := NewRegistry()
	app, err := NewApp(r)
	require.NoError(t, err)

	app.RequestsTotal("GET", "/orders", "200").Inc()
	app.RequestsTotal("POST", "/users/register", "500").Inc()
	app.RequestDuration("GET", "/orders").Observe(0.042)
	app.ActiveRequests().Set(2)
	app.OrderProcessing().Observe(1.2)
	app.CPUUsage().Set(55.5)

	parser := expfmt.NewTextParser(model.LegacyValidation)
	families, err := parser.TextToMetricFamilies(strings.NewReader(r.Render()))
	require.NoError(t, err, "canonical parser rejected exposition output")

	reqs, ok := families["http_requests_total"]
	require.True(t, ok)
	assert.Len(t, reqs.GetMetric(), 2)

	dur, ok := families["http_request_duration_seconds"]
	require.True(t, ok)
	require.Len(t, dur.GetMetric(), 1)
	hist := dur.GetMetric()[0].GetHistogram()
	assert.EqualValues(t, 1, hist.GetSampleCount())
	assert.InDelta(t, 0.042, hist.GetSampleSum(), 1e-9)

	active, ok := families["http_active_requests"]
	require.True(t, ok)
	assert.Equal(t, 2.0, active.GetMetric()[0].GetGauge().GetValue())
}
