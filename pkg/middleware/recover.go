package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/JaimeStill/moodai/pkg/handlers"
)

var errInternal = errors.New("internal server error")

// Recover turns a handler panic into a JSON 500 and logs the stack.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recover(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logger.Error("handler panic", "panic", v, "method", r.Method, "uri", r.URL.RequestURI(), "stack", string(debug.Stack()))
				handlers.RespondJSON(w, http.StatusInternalServerError, map[string]string{"error": errInternal.Error()})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
