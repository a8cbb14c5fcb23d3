package metadata

import (
	"context"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go/ratelimiter"

	"github.com/animeku/anistream/internal/cache"
	"github.com/animeku/anistream/internal/config"
	"github.com/animeku/anistream/internal/models"
)

// jikanRateLimit is the published ceiling of the metadata API: 3 requests per
// second. The smooth limiter spaces permits ~333ms apart, which also covers
// the old fixed 300ms pre-request delay.
const jikanRateLimit = 3

// Client defines the read operations against the anime metadata API.
// Every call is a fresh network round trip unless the response cache has the
// URL; failures are never retried and propagate as typed errors.
type Client interface {
	TopAnime(ctx context.Context, page int) (*models.AnimeList, error)
	SeasonNow(ctx context.Context, page int) (*models.AnimeList, error)
	SearchAnime(ctx context.Context, query string, page int) (*models.AnimeList, error)
	AnimeByID(ctx context.Context, id int) (*models.Anime, error)
	Episodes(ctx context.Context, id, page int) (*models.EpisodeList, error)

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient *http.Client
	baseURL    string
	limiter    ratelimiter.RateLimiter[any]
	cache      cache.Cache
}

// NewClient creates a new metadata client. The cache may be nil, in which case
// every call goes to the network.
func NewClient(cfg *config.Config, responseCache cache.Cache) Client {
	// Parse timeout duration
	timeout := 30 * time.Second // default
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to preserve its settings (timeouts, connection
	// pooling, HTTP/2) and wrap it with compression support (gzip, brotli, zstd).
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: newCompressionTransport(baseTransport),
	}

	return &client{
		httpClient: httpClient,
		baseURL:    cfg.Jikan.BaseURL,
		limiter:    ratelimiter.NewSmooth[any](jikanRateLimit, time.Second),
		cache:      responseCache,
	}
}

// Close releases any resources held by the client, such as cache connections.
func (c *client) Close() error {
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}
