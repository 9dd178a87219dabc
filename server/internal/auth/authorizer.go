package auth

import (
	"context"
)

// ActorInfo contains information about an authenticated caller
type ActorInfo struct {
	ActorID string `json:"actor_id"` // Masked API key, safe to log and persist
	KeyName string `json:"key_name"` // Human-readable name
}

// Authorizer validates API keys and checks permissions in one call
type Authorizer interface {
	// Authorize validates the API key for an operation (HTTP method) on a resource (path).
	// Returns ActorInfo if authorized, error if authentication fails
	Authorize(ctx context.Context, apiKey, operation, resource string) (*ActorInfo, error)
}

type actorKey struct{}

// WithActor returns a copy of ctx carrying the authenticated actor.
func WithActor(ctx context.Context, a *ActorInfo) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFromContext returns the actor stored by WithActor, or nil.
func ActorFromContext(ctx context.Context) *ActorInfo {
	a, _ := ctx.Value(actorKey{}).(*ActorInfo)
	return a
}
