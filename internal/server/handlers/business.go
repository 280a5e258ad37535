package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	derrors "git.home.luguber.info/inful/demoapi/internal/errors"
	"git.home.luguber.info/inful/demoapi/internal/logfields"
	"git.home.luguber.info/inful/demoapi/internal/metrics"
	"git.home.luguber.info/inful/demoapi/internal/server/responses"
)

// BusinessHandlers serves the simulated business endpoints: user
// registration and order processing. All latency and outcomes come from
// the Simulator, only the metrics they record are real.
type BusinessHandlers struct {
	app          *metrics.App
	sim          Simulator
	errorAdapter *derrors.HTTPErrorAdapter
	logger       *slog.Logger
}

// NewBusinessHandlers creates handlers for the business API endpoints.
func NewBusinessHandlers(app *metrics.App, sim Simulator, logger *slog.Logger) *BusinessHandlers {
	return &BusinessHandlers{
		app:          app,
		sim:          sim,
		errorAdapter: derrors.NewHTTPErrorAdapter(logger),
		logger:       logger,
	}
}

// HandleRegisterUser handles POST /users/register. Work is simulated with
// a 100..500ms delay plus a cache lookup against the user cache.
func (h *BusinessHandlers) HandleRegisterUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorAdapter.WriteErrorResponse(w, r, derrors.ValidationError("method not allowed, use POST"))
		return
	}

	var req responses.UserRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.registrationFailed(w, r, derrors.WrapError(err, derrors.CategoryValidation, "invalid registration body"))
		return
	}
	if err := validateRegistration(req); err != nil {
		h.registrationFailed(w, r, err)
		return
	}

	h.sim.Delay(r.Context(), 100*time.Millisecond, 500*time.Millisecond)

	// Simulated duplicate check against the user cache, 80% hit rate.
	if h.sim.Chance(0.8) {
		h.app.CacheHits("user_cache").Inc()
	} else {
		h.app.CacheMisses("user_cache").Inc()
	}

	h.app.UserRegistrations().Inc()
	h.app.BusinessOps("user_registration", "success").Inc()

	h.logger.Info("user registered", slog.String("username", req.Username))

	writeJSONPretty(w, r, http.StatusCreated, responses.UserRegistrationResponse{
		Message:  "User registered successfully",
		UserID:   h.sim.IntBetween(1000, 9999),
		Username: req.Username,
	})
}

// HandleProcessOrder handles POST /orders. Processing is simulated with a
// 0.5..2s delay and a timed database query.
func (h *BusinessHandlers) HandleProcessOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorAdapter.WriteErrorResponse(w, r, derrors.ValidationError("method not allowed, use POST"))
		return
	}

	var req responses.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.orderFailed(w, r, derrors.WrapError(err, derrors.CategoryValidation, "invalid order body"))
		return
	}
	if err := validateOrder(req); err != nil {
		h.orderFailed(w, r, err)
		return
	}

	start := time.Now()
	h.sim.Delay(r.Context(), 500*time.Millisecond, 2*time.Second)

	dbElapsed := h.sim.Delay(r.Context(), 100*time.Millisecond, 300*time.Millisecond)
	h.app.DBQueryDuration().Observe(dbElapsed.Seconds())

	elapsed := time.Since(start)
	h.app.OrderProcessing().Observe(elapsed.Seconds())
	h.app.BusinessOps("order_processing", "success").Inc()

	h.logger.Info("order processed",
		slog.Int("user_id", req.UserID),
		slog.Float64("total_amount", req.TotalAmount),
		slog.Duration("duration", elapsed))

	writeJSONPretty(w, r, http.StatusCreated, responses.OrderResponse{
		Message:        "Order processed successfully",
		OrderID:        h.sim.IntBetween(10000, 99999),
		TotalAmount:    req.TotalAmount,
		ProcessingTime: elapsed.Seconds(),
	})
}

func (h *BusinessHandlers) registrationFailed(w http.ResponseWriter, r *http.Request, err error) {
	h.app.BusinessOps("user_registration", "error").Inc()
	h.app.Errors("registration_error").Inc()
	h.logger.Warn("user registration rejected", logfields.Error(err))
	h.errorAdapter.WriteErrorResponse(w, r, err)
}

func (h *BusinessHandlers) orderFailed(w http.ResponseWriter, r *http.Request, err error) {
	h.app.BusinessOps("order_processing", "error").Inc()
	h.app.Errors("order_error").Inc()
	h.logger.Warn("order rejected", logfields.Error(err))
	h.errorAdapter.WriteErrorResponse(w, r, err)
}

func validateRegistration(req responses.UserRegistrationRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return derrors.ValidationError("username is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return derrors.ValidationError("email is required")
	}
	if !strings.Contains(req.Email, "@") {
		return derrors.ValidationError("email is not valid").WithContext("email", req.Email)
	}
	return nil
}

func validateOrder(req responses.OrderRequest) error {
	if req.UserID <= 0 {
		return derrors.ValidationError("user_id is required")
	}
	if len(req.Items) == 0 {
		return derrors.ValidationError("order needs at least one item")
	}
	if req.TotalAmount <= 0 {
		return derrors.ValidationError("total_amount must be positive")
	}
	return nil
}
