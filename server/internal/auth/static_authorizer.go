package auth

import (
	"context"
	"crypto/subtle"
)

// StaticKeyAuthorizer accepts a fixed set of API keys. Every accepted key has
// full access; there are no per-operation permissions.
type StaticKeyAuthorizer struct {
	keys [][]byte
}

// NewStaticKeyAuthorizer creates an authorizer for the given keys. Empty keys are ignored.
func NewStaticKeyAuthorizer(keys ...string) *StaticKeyAuthorizer {
	a := &StaticKeyAuthorizer{}
	for _, k := range keys {
		if k != "" {
			a.keys = append(a.keys, []byte(k))
		}
	}
	return a
}

// Authorize validates apiKey in constant time against every configured key.
func (a *StaticKeyAuthorizer) Authorize(ctx context.Context, apiKey, operation, resource string) (*ActorInfo, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	match := 0
	for _, k := range a.keys {
		match |= subtle.ConstantTimeCompare(k, []byte(apiKey))
	}
	if match != 1 {
		return nil, ErrInvalidAPIKey
	}
	return &ActorInfo{
		ActorID: MaskKey(apiKey),
		KeyName: "static",
	}, nil
}
