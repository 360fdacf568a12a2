package middleware

import (
	"net/http"
	"time"

	"github.com/JaimeStill/web-quickstart/pkg/metrics"
)

// Metrics returns middleware that records request counts and latencies.
// Register it as the innermost middleware so the route pattern set by
// http.ServeMux is visible once the handler returns.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			m.Observe(r.Method, r.Pattern, rec.status, time.Since(start))
		})
	}
}
