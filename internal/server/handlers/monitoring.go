package handlers

import (
	"log/slog"
	"net/http"
	"time"

	derrors "git.home.luguber.info/inful/demoapi/internal/errors"
	"git.home.luguber.info/inful/demoapi/internal/logfields"
	"git.home.luguber.info/inful/demoapi/internal/metrics"
	"git.home.luguber.info/inful/demoapi/internal/server/responses"
	"git.home.luguber.info/inful/demoapi/internal/version"
)

// MonitoringHandlers serves the service info, health, analytics, and
// metrics scrape endpoints.
type MonitoringHandlers struct {
	app          *metrics.App
	startTime    time.Time
	errorAdapter *derrors.HTTPErrorAdapter
	logger       *slog.Logger
}

// NewMonitoringHandlers creates handlers for the monitoring endpoints.
// Uptime is measured from this call.
func NewMonitoringHandlers(app *metrics.App, logger *slog.Logger) *MonitoringHandlers {
	return &MonitoringHandlers{
		app:          app,
		startTime:    time.Now(),
		errorAdapter: derrors.NewHTTPErrorAdapter(logger),
		logger:       logger,
	}
}

// HandleRoot handles GET / with a service info document.
func (h *MonitoringHandlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.errorAdapter.WriteErrorResponse(w, r, derrors.NotFoundError("no such endpoint").
			WithContext("path", r.URL.Path))
		return
	}
	if r.Method != http.MethodGet {
		h.errorAdapter.WriteErrorResponse(w, r, derrors.ValidationError("method not allowed, use GET"))
		return
	}

	writeJSONPretty(w, r, http.StatusOK, responses.ServiceInfoResponse{
		Message: "Monitoring demo service",
		Version: version.Version,
		Metrics: "/metrics",
		Health:  "/health",
	})
}

// HandleHealthCheck handles GET /health.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorAdapter.WriteErrorResponse(w, r, derrors.ValidationError("method not allowed, use GET"))
		return
	}

	writeJSONPretty(w, r, http.StatusOK, responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.startTime).Seconds(),
	})
}

// HandleAnalytics handles GET /analytics/metrics, a JSON summary derived
// from the live registry rather than separately tracked state.
func (h *MonitoringHandlers) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorAdapter.WriteErrorResponse(w, r, derrors.ValidationError("method not allowed, use GET"))
		return
	}

	totals := h.app.Totals()
	writeJSONPretty(w, r, http.StatusOK, responses.AnalyticsResponse{
		ActiveRequests:  totals.ActiveRequests,
		TotalRequests:   totals.Requests,
		ErrorCount:      totals.Errors,
		AvgResponseTime: totals.AvgRequestSeconds,
		Timestamp:       time.Now().UTC(),
	})
}

// HandleMetrics handles GET /metrics, the Prometheus text exposition
// scrape endpoint.
func (h *MonitoringHandlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorAdapter.WriteErrorResponse(w, r, derrors.ValidationError("method not allowed, use GET"))
		return
	}

	w.Header().Set("Content-Type", metrics.TextContentType)
	if err := h.app.Registry().Expose(w); err != nil {
		// Headers are already out, all we can do is log.
		h.logger.Error("metrics exposition failed", logfields.Error(err))
	}
}
