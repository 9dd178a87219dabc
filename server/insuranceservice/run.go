package insuranceservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/api"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/auth"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/config"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/factory"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/health"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/logger"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/notify"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store"
)

// Run starts the insurance API HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("insurance-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("Insurance service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	backend, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}()

	// Start health checkers before serving so /v0/health has data
	svcHealth := startHealthCheckers(ctx, cfg, log, backend)

	// Block startup until dependencies report healthy; fail fast otherwise
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	svcs := api.NewServices(store.NewDocuments(backend), log)
	startNotifier(ctx, cfg, log, svcs)

	router := buildRouter(svcs, cfg, log, svcHealth)

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// buildRouter wires services, authentication and metrics into the HTTP router.
func buildRouter(svcs *api.Services, cfg *config.Config, log zerolog.Logger, svcHealth api.ServiceHealth) *mux.Router {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return api.NewRouter(api.RouterDeps{
		Services:   svcs,
		Authorizer: auth.NewStaticKeyAuthorizer(cfg.APIKeys...),
		Health:     svcHealth,
		Registry:   reg,
		Log:        log,
	})
}

// startHealthCheckers starts the store checker and the service-level aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, backend store.DocumentStore) *health.ServiceHealthChecker {
	interval := cfg.HealthInterval()

	storeChecker := store.NewStoreHealthChecker(backend, log, cfg.HealthProbeTimeout())
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

// startNotifier runs the notification dispatcher when an interval is configured.
func startNotifier(ctx context.Context, cfg *config.Config, log zerolog.Logger, svcs *api.Services) {
	if cfg.NotifyIntervalSeconds <= 0 {
		return
	}
	d := notify.NewDispatcher(svcs.Notifications, notify.LogSender{Log: log}, notify.Config{
		Interval:    time.Duration(cfg.NotifyIntervalSeconds) * time.Second,
		MaxAttempts: cfg.NotifyMaxAttempts,
	}, log)
	go func() { _ = d.Run(ctx) }()
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// calculateStartupHealthTimeout returns the startup health timeout in seconds,
// calculated as interval*2 with a minimum of 60 seconds.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// healthStatus is the part of the service health checker startup needs.
type healthStatus interface {
	IsHealthy() bool
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth healthStatus) error {
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
