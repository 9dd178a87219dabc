package middleware

import (
	"net/http"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/api/respond"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/auth"
	"github.com/rs/zerolog"
)

// RequireAPIKey rejects requests without a recognised x-api-key header before
// any handler runs. The authenticated actor is attached to the request context.
func RequireAPIKey(authorizer auth.Authorizer, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey, err := auth.ExtractAPIKey(r)
			if err == nil {
				var actor *auth.ActorInfo
				actor, err = authorizer.Authorize(r.Context(), apiKey, r.Method, r.URL.Path)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
					return
				}
			}
			log.Debug().
				Err(err).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request rejected")
			respond.WriteUnauthorized(w, "Valid API key required")
		})
	}
}
