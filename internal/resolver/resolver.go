package resolver

import (
	"context"
	"net/http"
	"time"

	"github.com/animeku/anistream/internal/config"
	"github.com/animeku/anistream/internal/metrics"
	"github.com/animeku/anistream/internal/models"
)

// Request describes a single playback attempt. Trailer carries the embed URL
// from the already-fetched anime record; it may be empty for non-trailer
// servers or when the record has no official trailer.
type Request struct {
	Server  models.Server
	Titles  models.Titles
	Episode int
	Trailer string
}

// Resolver turns a stream request into exactly one playable URL or one
// human-readable failure. Resolve always settles: every outbound attempt
// carries its own timeout and no strategy retries the same provider with the
// same query.
type Resolver interface {
	Resolve(ctx context.Context, req Request) models.StreamResult

	// FallbackURL builds a manual search-page link for the given server so the
	// UI can offer a direct way out when automatic resolution fails.
	FallbackURL(server models.Server, title string) string
}

// resolver implements the Resolver interface
type resolver struct {
	httpClient *http.Client

	scraperEndpoint string
	scraperTimeout  time.Duration
	templates       map[models.Server]string

	aggregatorBase  string
	preferredMirror []string

	providers       []string
	allowedChannels []string
	subtitleMarkers []string
	attemptTimeout  time.Duration
	queryDelay      time.Duration
}

// New creates a resolver from configuration. Endpoint lists and allow-lists
// come from config so tests can swap them without touching resolution logic.
func New(cfg *config.Config) Resolver {
	return &resolver{
		httpClient:      &http.Client{},
		scraperEndpoint: cfg.Scraper.Endpoint,
		scraperTimeout:  parseDuration(cfg.Scraper.Timeout, 15*time.Second),
		templates:       defaultTemplates(),
		aggregatorBase:  cfg.Aggregator.BaseURL,
		preferredMirror: defaultPreferredMirrors(),
		providers:       cfg.VideoSearch.Providers,
		allowedChannels: cfg.VideoSearch.AllowedChannels,
		subtitleMarkers: cfg.VideoSearch.SubtitleMarkers,
		attemptTimeout:  parseDuration(cfg.VideoSearch.AttemptTimeout, 4*time.Second),
		queryDelay:      parseDuration(cfg.VideoSearch.QueryDelay, 500*time.Millisecond),
	}
}

// Resolve dispatches the request to the strategy class registered for its
// server. Unknown servers are rejected here, before any network call.
func (r *resolver) Resolve(ctx context.Context, req Request) models.StreamResult {
	logger := config.GetLogger()
	start := time.Now()

	result := r.dispatch(ctx, req)

	outcome := "failure"
	if result.Success {
		outcome = "success"
	}
	metrics.StreamResolutionsTotal.WithLabelValues(req.Server.String(), outcome).Inc()
	metrics.ResolutionDuration.WithLabelValues(req.Server.String()).Observe(time.Since(start).Seconds())

	logger.Info().
		Str("server", req.Server.String()).
		Int("episode", req.Episode).
		Bool("success", result.Success).
		Str("message", result.Message).
		Dur("elapsed", time.Since(start)).
		Msg("Stream resolution settled")

	return result
}

func (r *resolver) dispatch(ctx context.Context, req Request) models.StreamResult {
	switch req.Server {
	case models.ServerTrailer:
		return resolveTrailer(req.Trailer)
	case models.ServerKurama:
		return r.resolveVideoSearch(ctx, req)
	case models.ServerSamehadaku:
		result := r.resolveAggregator(ctx, req)
		if result.Success {
			return result
		}
		// Secondary path: one scrape-proxy attempt when a template exists.
		// Its outcome, success or failure, is final — no further cascading.
		if _, ok := r.templates[req.Server]; ok {
			return r.resolveScrape(ctx, req)
		}
		return result
	case models.ServerMovieBox:
		return r.resolveScrape(ctx, req)
	default:
		return models.StreamFailure("Unsupported server type")
	}
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger := config.GetLogger()
		logger.Warn().Str("duration", value).Msg("Invalid duration, using default")
		return fallback
	}
	return d
}
