package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/animeku/anistream/internal/cache"
	"github.com/animeku/anistream/internal/config"
	"github.com/animeku/anistream/internal/httpapi"
	"github.com/animeku/anistream/internal/metadata"
	"github.com/animeku/anistream/internal/metrics"
	"github.com/animeku/anistream/internal/resolver"
)

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("jikan_base_url", cfg.Jikan.BaseURL).
		Str("scraper_endpoint", cfg.Scraper.Endpoint).
		Str("aggregator_base_url", cfg.Aggregator.BaseURL).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Msg("Application started with configuration")

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Warn().Err(err).Msg("Sentry initialization failed, continuing without error reporting")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Metadata response cache; an unreachable Redis falls back to memory so
	// the service still starts.
	responseCache := newResponseCache()

	metaClient := metadata.NewClient(cfg, responseCache)
	defer func() {
		if err := metaClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close metadata client")
		}
	}()

	streamResolver := resolver.New(cfg)

	// Start Prometheus metrics HTTP server
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && err.Error() != "http: Server closed" {
				logger.Fatal().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	app := httpapi.NewApp()
	httpapi.RegisterRoutes(app, metaClient, streamResolver)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		if err := app.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
		}
	}()

	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logger.Info().Str("address", address).Msg("Starting HTTP server")
	if err := app.Listen(address); err != nil {
		logger.Fatal().Err(err).Msg("Failed to serve HTTP")
	}

	logger.Info().Msg("Server stopped gracefully")
}

// newResponseCache builds the configured cache provider for metadata
// responses, degrading to the in-memory provider when the configured one
// cannot be created.
func newResponseCache() cache.Cache {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	ttl := 10 * time.Minute
	if cfg.Cache.TTL != "" {
		if parsed, err := time.ParseDuration(cfg.Cache.TTL); err == nil {
			ttl = parsed
		} else {
			logger.Warn().Err(err).Str("ttl", cfg.Cache.TTL).Msg("Invalid cache TTL, using default 10m")
		}
	}

	providerCfg := cache.ProviderConfig{
		Size:          cfg.Cache.Size,
		TTL:           ttl,
		Logger:        cacheLogger{},
		RedisAddress:  cfg.Cache.RedisAddress,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		Group:         "metadata",
	}

	responseCache, err := cache.New(cfg.Cache.Provider, providerCfg)
	if err != nil {
		logger.Warn().Err(err).Str("provider", cfg.Cache.Provider).Msg("Cache provider unavailable, falling back to memory")
		responseCache, err = cache.New("memory", providerCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create fallback memory cache")
		}
	}
	return responseCache
}

// cacheLogger adapts the global zerolog logger to the cache.Logger interface.
type cacheLogger struct{}

func (cacheLogger) Error(msg string, err error) {
	logger := config.GetLogger()
	logger.Error().Err(err).Msg(msg)
}
