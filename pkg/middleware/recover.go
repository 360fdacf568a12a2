package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/JaimeStill/web-quickstart/pkg/handlers"
)

// Recover returns middleware that converts handler panics into the default
// 500 error page. Stack traces are logged when debug is true.
func Recover(logger *slog.Logger, debugMode bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if p == http.ErrAbortHandler {
					panic(p)
				}

				attrs := []any{"panic", p, "method", r.Method, "uri", r.URL.RequestURI()}
				if debugMode {
					attrs = append(attrs, "stack", string(debug.Stack()))
				}
				logger.Error("handler panic", attrs...)

				handlers.WriteError(w, http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
