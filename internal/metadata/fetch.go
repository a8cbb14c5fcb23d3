package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/animeku/anistream/internal/apperrors"
	"github.com/animeku/anistream/internal/config"
	"github.com/animeku/anistream/internal/metrics"
)

// fetchJSON performs one rate-limited GET against the metadata API and decodes
// the JSON body into out. Cached bodies bypass both the limiter and the
// network. A non-2xx status becomes an ErrUpstreamStatus carrying the
// operation name; it is never retried here.
func (c *client) fetchJSON(ctx context.Context, operation, url string, out interface{}) error {
	logger := config.GetLogger()

	if c.cache != nil {
		if body, ok := c.cache.Get(url); ok {
			metrics.MetadataRequestsTotal.WithLabelValues(operation, "hit").Inc()
			return json.Unmarshal(body, out)
		}
	}

	// Respect the upstream rate ceiling before firing.
	if err := c.limiter.AcquirePermit(ctx); err != nil {
		metrics.MetadataRequestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("%s: acquire rate permit: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	req.Header.Set("User-Agent", config.GetUserAgent())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.MetadataRequestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.MetadataRequestsTotal.WithLabelValues(operation, "error").Inc()
		logger.Warn().Str("operation", operation).Int("status", resp.StatusCode).Str("url", url).Msg("Metadata API returned non-success status")
		return apperrors.NewUpstreamStatusError(operation, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.MetadataRequestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("%s: read body: %w", operation, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.MetadataRequestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}

	if c.cache != nil {
		c.cache.Set(url, body)
	}
	metrics.MetadataRequestsTotal.WithLabelValues(operation, "ok").Inc()

	logger.Debug().Str("operation", operation).Str("url", url).Msg("Metadata fetch completed")
	return nil
}
