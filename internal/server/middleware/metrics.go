package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/demoapi/internal/metrics"
)

// requestMetricsMiddleware derives metrics from every request regardless of
// which handler runs: an in-flight gauge held for the request's lifetime, a
// per-(method, path) duration histogram, and a per-(method, path, status)
// request counter. A panicking handler increments the error counter keyed
// by the panic's concrete kind and is re-raised unchanged; observation must
// never swallow failures.
//
// The in-flight accounting uses atomic gauge deltas. Concurrent requests
// share the gauge, so a read-then-Set here would lose updates.
func requestMetricsMiddleware(app *metrics.App, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		active := app.ActiveRequests()
		active.Add(1)
		defer active.Add(-1)

		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)

		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		defer func() {
			if rec := recover(); rec != nil {
				app.Errors(failureKind(rec)).Inc()
				panic(rec)
			}
			duration := time.Since(start)
			app.RequestDuration(r.Method, r.URL.Path).Observe(duration.Seconds())
			app.RequestsTotal(r.Method, r.URL.Path, strconv.Itoa(wrapped.statusCode)).Inc()
		}()

		next.ServeHTTP(wrapped, r.WithContext(ctx))
	})
}

// failureKind names the concrete type of a panic value for the error
// counter's error_type label.
func failureKind(rec any) string {
	if rec == nil {
		return "unknown"
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", rec), "*")
}
