package errors

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// HTTPErrorAdapter handles error presentation and status code
// determination for HTTP handlers.
type HTTPErrorAdapter struct {
	logger *slog.Logger
}

// NewHTTPErrorAdapter creates a new HTTP error adapter with an optional
// slog logger. If logger is nil, the default package logger is used.
func NewHTTPErrorAdapter(logger *slog.Logger) *HTTPErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPErrorAdapter{logger: logger}
}

// HTTPErrorResponse is the standard JSON error payload.
type HTTPErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// StatusCodeFor maps an error's classification to an HTTP status code.
// Unknown errors map to 500.
func (a *HTTPErrorAdapter) StatusCodeFor(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var se *ServiceError
	if errors.As(err, &se) {
		switch se.Category {
		case CategoryValidation:
			return http.StatusBadRequest
		case CategoryNotFound:
			return http.StatusNotFound
		case CategoryRuntime, CategorySampling:
			return http.StatusServiceUnavailable
		case CategoryMetric, CategoryInternal:
			return http.StatusInternalServerError
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// WriteErrorResponse writes a JSON error response and logs with a level
// matching the error's severity.
func (a *HTTPErrorAdapter) WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	status := a.StatusCodeFor(err)
	payload := a.FormatErrorResponse(err)

	b, jerr := json.Marshal(payload)
	if jerr != nil {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)

	var se *ServiceError
	if errors.As(err, &se) {
		a.logger.Log(r.Context(), a.levelFor(se.Severity), se.Error())
		return
	}
	a.logger.ErrorContext(r.Context(), err.Error())
}

// FormatErrorResponse converts known errors into a canonical payload.
func (a *HTTPErrorAdapter) FormatErrorResponse(err error) HTTPErrorResponse {
	if err == nil {
		return HTTPErrorResponse{}
	}
	var se *ServiceError
	if errors.As(err, &se) {
		resp := HTTPErrorResponse{Error: se.Message, Code: string(se.Category)}
		if len(se.Context) > 0 {
			resp.Details = se.Context
		}
		return resp
	}
	return HTTPErrorResponse{Error: err.Error(), Code: string(CategoryInternal)}
}

func (a *HTTPErrorAdapter) levelFor(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityFatal, SeverityError:
		return slog.LevelError
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityInfo:
		return slog.LevelInfo
	default:
		return slog.LevelError
	}
}
