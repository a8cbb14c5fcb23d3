package resolver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/animeku/anistream/internal/config"
	"github.com/animeku/anistream/internal/models"
)

const msgNoStream = "No stream found in search results"

// MsgScraperConnect is the failure message for scraping-service connectivity
// problems. Exported because the HTTP layer maps exactly this message to a
// 502 instead of the usual 404.
const MsgScraperConnect = "Failed to connect to scraping service"

// scrapeItem is one extracted item from the scraping service. Type is empty
// when the scraper does not distinguish item types.
type scrapeItem struct {
	Type     string `json:"type,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
	EmbedURL string `json:"embedUrl,omitempty"`
}

type scrapeResponse struct {
	Success bool         `json:"success"`
	Data    []scrapeItem `json:"data"`
}

// resolveScrape submits the server's search page to the external scraping
// service and relays the first returned item that carries a playable URL.
// Connectivity failures and empty results are distinguished only in the
// reported message; both are terminal.
func (r *resolver) resolveScrape(ctx context.Context, req Request) models.StreamResult {
	logger := config.GetLogger()

	targetURL, ok := r.searchURL(req.Server, req.Titles.Preferred())
	if !ok {
		return models.StreamFailure("Unsupported server type")
	}

	logger.Debug().Str("server", req.Server.String()).Str("target", targetURL).Msg("Submitting page to scraping service")

	items, err := r.callScraper(ctx, targetURL)
	if err != nil {
		logger.Warn().Err(err).Str("target", targetURL).Msg("Scraping service call failed")
		return models.StreamFailure(MsgScraperConnect)
	}

	for _, item := range items {
		// Skip items the scraper tagged as something other than playable video.
		if item.Type != "" && !strings.EqualFold(item.Type, "video") {
			continue
		}
		if item.VideoURL != "" {
			return models.StreamSuccess(item.VideoURL)
		}
		if item.EmbedURL != "" {
			return models.StreamSuccess(item.EmbedURL)
		}
	}
	return models.StreamFailure(msgNoStream)
}

// callScraper makes the single POST to the scraping service. Transport
// errors, non-2xx statuses and malformed bodies are all reported as errors;
// a well-formed unsuccessful response yields an empty item list instead.
func (r *resolver) callScraper(ctx context.Context, siteURL string) ([]scrapeItem, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.scraperTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{"siteUrl": siteURL})
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, r.scraperEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", config.GetUserAgent())

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("scraper returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var decoded scrapeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !decoded.Success {
		return nil, nil
	}
	return decoded.Data, nil
}
