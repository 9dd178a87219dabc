// Package mcp re-exposes the insurance API as Model Context Protocol tools.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sideko-Inc/insurance-api-demo/client"
	"github.com/Sideko-Inc/insurance-api-demo/devmode"
	"github.com/Sideko-Inc/insurance-api-demo/mcp/internal/handlers"
)

const (
	ServerName    = "insurance-mcp-server"
	ServerVersion = "1.0.0"

	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Configuration holds all settings for the MCP server
type config struct {
	APIURL          string
	APIKey          string
	Transport       string
	HTTPAddr        string
	LogLevel        zerolog.Level
	ShutdownTimeout time.Duration
	HTTPReadTimeout time.Duration
	HTTPIdleTimeout time.Duration
}

// loadConfig reads environment variables, then lets command line flags
// override them.
func loadConfig(args []string) (*config, error) {
	cfg := &config{
		APIURL:          getEnvOrDefault("INSURANCE_API_URL", "http://localhost:3000"),
		APIKey:          getEnvOrDefault("INSURANCE_API_KEY", devmode.DemoAPIKey),
		Transport:       getEnvOrDefault("MCP_TRANSPORT", TransportStdio),
		HTTPAddr:        getEnvOrDefault("MCP_HTTP_ADDR", ":11546"),
		ShutdownTimeout: parseDurationOrDefault("SHUTDOWN_TIMEOUT", "10s"),
		HTTPReadTimeout: parseDurationOrDefault("HTTP_READ_TIMEOUT", "5s"),
		HTTPIdleTimeout: parseDurationOrDefault("HTTP_IDLE_TIMEOUT", "120s"),
	}

	fs := flag.NewFlagSet(ServerName, flag.ContinueOnError)
	rawLogLevel := getEnvOrDefault("LOG_LEVEL", "info")
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "Base URL of the insurance API")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "MCP transport: stdio|http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "Listen address for the http transport")
	fs.StringVar(&rawLogLevel, "log-level", rawLogLevel, "Log level: debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.LogLevel = parseLogLevel(rawLogLevel)

	cfg.Transport = strings.ToLower(cfg.Transport)
	if cfg.Transport != TransportStdio && cfg.Transport != TransportHTTP {
		return nil, fmt.Errorf("unknown transport %q (want stdio or http)", cfg.Transport)
	}
	return cfg, nil
}

// initLogger sends logs to stderr; stdout belongs to the stdio transport.
func (c *config) initLogger() {
	zerolog.SetGlobalLevel(c.LogLevel)
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Caller().Logger()
}

// Helper functions
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(envKey, defaultValue string) time.Duration {
	if value := os.Getenv(envKey); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	d, _ := time.ParseDuration(defaultValue)
	return d
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds an MCP server with every insurance tool registered
// against sdk.
func NewServer(sdk *client.Client) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	for name, h := range map[string]toolRegisterer{
		"resource": handlers.NewResourceHandler(sdk),
		"action":   handlers.NewActionHandler(sdk),
		"insights": handlers.NewInsightsHandler(sdk),
	} {
		if err := h.RegisterTools(s); err != nil {
			return nil, fmt.Errorf("register %s tools: %w", name, err)
		}
	}
	return s, nil
}

// RunMCPServer starts the MCP server configured from os.Args and the environment.
func RunMCPServer() error {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	cfg.initLogger()

	log.Info().Str("api_url", cfg.APIURL).Msg("Creating insurance API client")
	sdk, err := client.New(cfg.APIURL, cfg.APIKey, client.WithRetry(10*time.Second))
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to create client")
		return err
	}

	s, err := NewServer(sdk)
	if err != nil {
		return err
	}

	if cfg.Transport == TransportStdio {
		log.Info().Msg("Starting insurance MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(s, cfg)
}

// serveHTTP serves the streamable HTTP transport until SIGINT/SIGTERM.
func serveHTTP(s *server.MCPServer, cfg *config) error {
	log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting insurance MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      streamSrv,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: 0, // No deadline - required for SSE streaming
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	shutdownComplete := make(chan struct{})
	go func() {
		defer close(shutdownComplete)

		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}

	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}
