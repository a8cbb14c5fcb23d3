package resolver

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/animeku/anistream/internal/config"
	"github.com/animeku/anistream/internal/models"
)

const msgVideoNotFound = "Video not found on automatic search"

// embedTemplate is the standard embeddable player URL; the %s placeholder
// receives the candidate's opaque video identifier.
const embedTemplate = "https://www.youtube.com/embed/%s?autoplay=1"

// searchCandidate is one video returned by a search provider.
type searchCandidate struct {
	Author  string `json:"author"`
	Title   string `json:"title"`
	VideoID string `json:"videoId"`
}

// resolveVideoSearch tries an ordered list of title queries against the
// configured search providers. Queries run strictly in sequence so an early
// acceptable match short-circuits later, less specific attempts; a politeness
// delay separates unsuccessful queries.
func (r *resolver) resolveVideoSearch(ctx context.Context, req Request) models.StreamResult {
	logger := config.GetLogger()

	queries := r.buildQueries(req.Titles, req.Episode)
	if len(queries) == 0 {
		return models.StreamFailure(msgVideoNotFound)
	}

	for i, query := range queries {
		candidates, err := r.searchWithRotation(ctx, query)
		if err != nil {
			logger.Debug().Err(err).Str("query", query).Msg("All providers failed for query")
		} else if embedURL, ok := r.pickCandidate(candidates); ok {
			return models.StreamSuccess(embedURL)
		}

		if i < len(queries)-1 {
			select {
			case <-time.After(r.queryDelay):
			case <-ctx.Done():
				return models.StreamFailure(msgVideoNotFound)
			}
		}
	}

	return models.StreamFailure(msgVideoNotFound)
}

// buildQueries produces search queries most-specific-first: the English title
// pinned to the primary official channel, then English/default titles with a
// subtitled marker, then the bare Japanese title. Empty variants are skipped
// and duplicates removed.
func (r *resolver) buildQueries(titles models.Titles, episode int) []string {
	var queries []string
	seen := make(map[string]bool)
	add := func(q string) {
		q = strings.TrimSpace(whitespaceRun.ReplaceAllString(q, " "))
		if q == "" || seen[q] {
			return
		}
		seen[q] = true
		queries = append(queries, q)
	}

	marker := "sub indo"
	if len(r.subtitleMarkers) > 0 {
		marker = r.subtitleMarkers[0]
	}

	if titles.English != "" {
		if len(r.allowedChannels) > 0 {
			add(fmt.Sprintf("%s episode %d %s", titles.English, episode, r.allowedChannels[0]))
		}
		add(fmt.Sprintf("%s episode %d %s", titles.English, episode, marker))
	}
	if titles.Default != "" {
		add(fmt.Sprintf("%s episode %d %s", titles.Default, episode, marker))
	}
	if titles.Japanese != "" {
		add(fmt.Sprintf("%s episode %d", titles.Japanese, episode))
	}

	return queries
}

// searchWithRotation tries the providers in randomized order until one
// answers; the first non-error response ends the rotation for this query.
func (r *resolver) searchWithRotation(ctx context.Context, query string) ([]searchCandidate, error) {
	if len(r.providers) == 0 {
		return nil, fmt.Errorf("no search providers configured")
	}

	order := rand.Perm(len(r.providers))
	var lastErr error
	for _, idx := range order {
		candidates, err := r.searchProvider(ctx, r.providers[idx], query)
		if err != nil {
			lastErr = err
			continue
		}
		return candidates, nil
	}
	return nil, fmt.Errorf("all %d providers failed: %w", len(r.providers), lastErr)
}

// searchProvider runs one search call against one provider with its own
// timeout; a timeout here aborts only this attempt, not the whole resolution.
func (r *resolver) searchProvider(ctx context.Context, baseURL, query string) ([]searchCandidate, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.attemptTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/v1/search?q=%s&type=video", baseURL, url.QueryEscape(query))
	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", config.GetUserAgent())

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var candidates []searchCandidate
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return candidates, nil
}

// pickCandidate selects the first candidate from an allow-listed official
// channel; when no author matches, the first candidate whose title carries a
// recognized subtitled marker is accepted instead.
func (r *resolver) pickCandidate(candidates []searchCandidate) (string, bool) {
	for _, c := range candidates {
		if c.VideoID != "" && containsAny(c.Author, r.allowedChannels) {
			return fmt.Sprintf(embedTemplate, c.VideoID), true
		}
	}
	for _, c := range candidates {
		if c.VideoID != "" && containsAny(c.Title, r.subtitleMarkers) {
			return fmt.Sprintf(embedTemplate, c.VideoID), true
		}
	}
	return "", false
}

// containsAny reports whether s contains any of the needles, case-insensitively.
func containsAny(s string, needles []string) bool {
	lowered := strings.ToLower(s)
	for _, needle := range needles {
		if needle != "" && strings.Contains(lowered, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}
