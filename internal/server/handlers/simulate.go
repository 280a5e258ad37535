package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	derrors "git.home.luguber.info/inful/demoapi/internal/errors"
	"git.home.luguber.info/inful/demoapi/internal/metrics"
	"git.home.luguber.info/inful/demoapi/internal/server/responses"
)

// SimulationHandlers serves the load and error simulation endpoints used
// to generate traffic on the metric registry.
type SimulationHandlers struct {
	app          *metrics.App
	sim          Simulator
	errorAdapter *derrors.HTTPErrorAdapter
	logger       *slog.Logger
}

// NewSimulationHandlers creates handlers for the simulation endpoints.
func NewSimulationHandlers(app *metrics.App, sim Simulator, logger *slog.Logger) *SimulationHandlers {
	return &SimulationHandlers{
		app:          app,
		sim:          sim,
		errorAdapter: derrors.NewHTTPErrorAdapter(logger),
		logger:       logger,
	}
}

// HandleSimulateLoad handles GET /simulate/load. It performs a random
// number of synthetic business operations so dashboards have data to
// show. Roughly a quarter of operations fail, and each operation does one
// cache lookup against a random backend.
func (h *SimulationHandlers) HandleSimulateLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorAdapter.WriteErrorResponse(w, r, derrors.ValidationError("method not allowed, use GET"))
		return
	}

	operations := h.sim.IntBetween(10, 100)
	for range operations {
		opType := h.sim.Pick("read", "write", "update", "delete")
		status := h.sim.Pick("success", "success", "success", "error")
		h.app.BusinessOps(opType, status).Inc()

		cacheType := h.sim.Pick("redis", "memcached", "local")
		if h.sim.Chance(0.7) {
			h.app.CacheHits(cacheType).Inc()
		} else {
			h.app.CacheMisses(cacheType).Inc()
		}
	}

	h.logger.Info("load simulation complete", slog.Int("operations", operations))

	writeJSONPretty(w, r, http.StatusOK, responses.LoadSimulationResponse{
		Message:    fmt.Sprintf("Simulated %d operations", operations),
		Operations: operations,
	})
}

// HandleSimulateError handles GET /simulate/error. It records a random
// error type on the error counters and responds with a 500.
func (h *SimulationHandlers) HandleSimulateError(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorAdapter.WriteErrorResponse(w, r, derrors.ValidationError("method not allowed, use GET"))
		return
	}

	kind := h.sim.Pick("database_error", "network_error", "validation_error", "timeout_error")
	h.app.Errors(kind).Inc()
	h.app.BusinessOps("error_simulation", "error").Inc()

	err := derrors.New(derrors.CategoryInternal, derrors.SeverityError,
		fmt.Sprintf("simulated %s", kind)).
		WithContext("error_type", kind)

	h.errorAdapter.WriteErrorResponse(w, r, err)
}
