package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	derrors "git.home.luguber.info/inful/demoapi/internal/errors"
	"git.home.luguber.info/inful/demoapi/internal/metrics"
)

type simulatedFailure struct{}

func (simulatedFailure) Error() string { return "simulated failure" }

func newTestChain(t *testing.T, handler http.Handler) (*metrics.App, http.Handler) {
	t.Helper()
	app, err := metrics.NewApp(metrics.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	chain := Chain(slog.Default(), derrors.NewHTTPErrorAdapter(slog.Default()), app)
	return app, chain(handler)
}

func TestRequestMetricsOnSuccess(t *testing.T) {
	var inFlightSeen float64
	var app *metrics.App
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inFlightSeen = app.ActiveRequests().Value()
		if RequestIDFromContext(r.Context()) == "" {
			t.Error("request ID missing from context")
		}
		w.WriteHeader(http.StatusCreated)
	})

	var wrapped http.Handler
	app, wrapped = newTestChain(t, handler)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
	if inFlightSeen != 1 {
		t.Errorf("active gauge during request = %g, want 1", inFlightSeen)
	}
	if got := app.ActiveRequests().Value(); got != 0 {
		t.Errorf("active gauge after request = %g, want 0", got)
	}
	if got := app.RequestsTotal(http.MethodPost, "/orders", "201").Value(); got != 1 {
		t.Errorf("request counter = %g, want 1", got)
	}
	if got := app.RequestDuration(http.MethodPost, "/orders").Snapshot().Count; got != 1 {
		t.Errorf("duration observations = %d, want 1", got)
	}
}

// The gauge must return to its pre-request value on every exit path; a
// panicking handler takes the failure path through the metrics middleware
// before the recovery layer renders the response.
func TestRequestMetricsOnPanic(t *testing.T) {
	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(simulatedFailure{})
	})
	app, wrapped := newTestChain(t, handler)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := app.ActiveRequests().Value(); got != 0 {
		t.Errorf("active gauge after panic = %g, want 0", got)
	}
	if got := app.Errors("middleware.simulatedFailure").Value(); got != 1 {
		t.Errorf("error counter = %g, want 1", got)
	}
}

func TestActiveGaugeBalancedUnderConcurrency(t *testing.T) {
	release := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	})
	app, wrapped := newTestChain(t, handler)

	const concurrent = 20
	var wg sync.WaitGroup
	wg.Add(concurrent)
	for range concurrent {
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hold", nil))
		}()
	}

	close(release)
	wg.Wait()

	if got := app.ActiveRequests().Value(); got != 0 {
		t.Errorf("active gauge = %g, want 0 after all requests", got)
	}
	if got := app.RequestsTotal(http.MethodGet, "/hold", "200").Value(); got != concurrent {
		t.Errorf("request counter = %g, want %d", got, concurrent)
	}
}

func TestFailureKind(t *testing.T) {
	tests := []struct {
		rec  any
		want string
	}{
		{simulatedFailure{}, "middleware.simulatedFailure"},
		{&simulatedFailure{}, "middleware.simulatedFailure"},
		{"bare string panic", "string"},
		{nil, "unknown"},
	}
	for _, tt := range tests {
		if got := failureKind(tt.rec); got != tt.want {
			t.Errorf("failureKind(%v) = %q, want %q", tt.rec, got, tt.want)
		}
	}
}
