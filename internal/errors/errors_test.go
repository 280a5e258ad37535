package errors

import (
	"encoding/json"
	stdErrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestServiceErrorFormatting(t *testing.T) {
	plain := New(CategoryMetric, SeverityError, "duplicate declaration")
	if got := plain.Error(); got != "metric (error): duplicate declaration" {
		t.Errorf("Error() = %q", got)
	}

	cause := stdErrors.New("read failed")
	wrapped := Wrap(cause, CategorySampling, SeverityWarning, "cpu sample")
	if got := wrapped.Error(); got != "sampling (warning): cpu sample: read failed" {
		t.Errorf("Error() = %q", got)
	}
	if !stdErrors.Is(wrapped, cause) {
		t.Error("wrapped error must unwrap to its cause")
	}
}

func TestGetCategory(t *testing.T) {
	if got := GetCategory(ValidationError("bad input")); got != CategoryValidation {
		t.Errorf("GetCategory = %v", got)
	}
	if got := GetCategory(stdErrors.New("plain")); got != CategoryInternal {
		t.Errorf("GetCategory for unclassified = %v", got)
	}
}

func TestHTTPErrorAdapterStatusCodes(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, http.StatusOK},
		{"validation", ValidationError("invalid input"), http.StatusBadRequest},
		{"not found", NotFoundError("no such route"), http.StatusNotFound},
		{"sampling", SamplingError(stdErrors.New("x"), "host stats"), http.StatusServiceUnavailable},
		{"metric misuse", New(CategoryMetric, SeverityError, "bad labels"), http.StatusInternalServerError},
		{"unclassified", stdErrors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.StatusCodeFor(tt.err); got != tt.expected {
				t.Errorf("StatusCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHTTPErrorAdapterWritesJSON(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	err := ValidationError("missing username").WithContext("field", "username")

	adapter.WriteErrorResponse(rec, req, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload HTTPErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if payload.Error != "missing username" || payload.Code != "validation" {
		t.Errorf("payload = %+v", payload)
	}
	if payload.Details["field"] != "username" {
		t.Errorf("details = %+v", payload.Details)
	}
}
