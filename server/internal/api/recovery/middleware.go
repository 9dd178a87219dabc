package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/api/respond"
	"github.com/rs/zerolog"
)

// New returns middleware that turns a panic in a downstream handler into a
// logged 500 with the standard error envelope.
func New(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Str("remote", r.RemoteAddr).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				respond.WriteInternalError(w, "Unexpected server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
