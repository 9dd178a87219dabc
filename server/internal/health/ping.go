package health

import "context"

// HealthPinger can be implemented by storage backends to expose a cheap
// connectivity check. HealthPing must return nil when the backend is reachable.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
