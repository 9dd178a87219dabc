package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/health"
	"github.com/rs/zerolog"
)

// healthProbeDocument is read on every probe when the backend has no HealthPing.
const healthProbeDocument = "__health_check__"

// StoreHealthChecker monitors document store health via periodic probes.
type StoreHealthChecker struct {
	store        DocumentStore
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

// NewStoreHealthChecker creates a new store health checker.
func NewStoreHealthChecker(store DocumentStore, log zerolog.Logger, probeTimeout time.Duration) *StoreHealthChecker {
	hc := &StoreHealthChecker{
		store:        store,
		log:          log,
		probeTimeout: probeTimeout,
	}
	hc.healthy.Store(0) // unhealthy until first successful probe
	return hc
}

// Name returns the checker name.
func (hc *StoreHealthChecker) Name() string {
	return "store"
}

// IsHealthy returns the cached health status (non-blocking).
func (hc *StoreHealthChecker) IsHealthy() bool {
	return hc.healthy.Load() == 1
}

// Start begins periodic health checking.
func (hc *StoreHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		to := hc.probeTimeout
		if to <= 0 {
			to = 2 * time.Second
		}
		checkCtx, cancel := context.WithTimeout(ctx, to)
		defer cancel()

		if hc.probe(checkCtx) {
			hc.healthy.Store(1)
		} else {
			hc.healthy.Store(0)
		}
	}

	check()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

// probe prefers the backend's HealthPing and falls back to reading a sentinel document.
func (hc *StoreHealthChecker) probe(ctx context.Context) bool {
	var err error
	if p, ok := hc.store.(health.HealthPinger); ok {
		err = p.HealthPing(ctx)
	} else {
		_, err = hc.store.Read(ctx, healthProbeDocument)
	}
	if err != nil {
		hc.log.Error().Stack().
			Str("checker", hc.Name()).
			Err(err).
			Msg("store health check failed")
		return false
	}
	return true
}
