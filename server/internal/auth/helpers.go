package auth

import (
	"net/http"
	"strings"

	"github.com/Sideko-Inc/insurance-api-demo/devmode"
)

// ExtractAPIKey extracts the API key from the x-api-key header.
func ExtractAPIKey(r *http.Request) (string, error) {
	key := strings.TrimSpace(r.Header.Get(devmode.HeaderName))
	if key == "" {
		return "", ErrMissingAPIKey
	}
	return key, nil
}

// MaskKey keeps a short prefix of key so audit records never hold the secret.
func MaskKey(key string) string {
	const visible = 4
	if len(key) <= visible {
		return "****"
	}
	return key[:visible] + "****"
}
