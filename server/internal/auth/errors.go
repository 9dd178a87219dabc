package auth

import "errors"

var (
	// ErrMissingAPIKey is returned when the request carries no x-api-key header
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidAPIKey is returned when the key is not recognized
	ErrInvalidAPIKey = errors.New("invalid API key")
)
