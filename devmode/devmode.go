// Package devmode provides the demo API keys shared by the server, client SDK and MCP adapter.
package devmode

// DemoAPIKey is the default key used by the client SDK and the MCP adapter.
// These keys are intentionally obvious and should never be used in production.
const DemoAPIKey = "demo-key-12345"

// TestAPIKey is a second accepted key so callers can exercise key rotation.
const TestAPIKey = "test-key-67890"

// HeaderName is the request header that carries the API key.
const HeaderName = "x-api-key"
