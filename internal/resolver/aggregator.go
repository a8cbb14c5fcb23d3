package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/animeku/anistream/internal/config"
	"github.com/animeku/anistream/internal/models"
)

const (
	msgAnimeNotFound = "Anime not found"
	msgNoSource      = "No playable stream in episode sources"
)

// defaultPreferredMirrors lists mirror-provider name substrings tried before
// falling back to the first mirror in an episode's source record.
func defaultPreferredMirrors() []string {
	return []string{"pixeldrain", "blogger", "acefile"}
}

// aggEnvelope is the common response envelope of the aggregator API. Data is
// kept raw so each stage decodes its own shape after the envelope guard.
type aggEnvelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
}

type aggSearchResult struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type aggEpisodeEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type aggAnimeDetail struct {
	EpisodeList []aggEpisodeEntry `json:"episodeList"`
}

type aggMirror struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type aggEpisodeSources struct {
	StreamURL string      `json:"streamUrl"`
	Mirrors   []aggMirror `json:"mirrors"`
}

var episodeNumberPattern = regexp.MustCompile(`\d+`)

// resolveAggregator queries the fan-subtitling aggregator as a typed API:
// search by the default title, take the first hit, walk its episode list for
// the entry matching the requested number, then read that episode's sources.
func (r *resolver) resolveAggregator(ctx context.Context, req Request) models.StreamResult {
	logger := config.GetLogger()

	title := req.Titles.Default
	if title == "" {
		title = req.Titles.Preferred()
	}
	if title == "" {
		return models.StreamFailure(msgAnimeNotFound)
	}

	var results []aggSearchResult
	if err := r.fetchAggregator(ctx, fmt.Sprintf("%s/search/%s", r.aggregatorBase, url.PathEscape(title)), &results); err != nil {
		logger.Debug().Err(err).Str("title", title).Msg("Aggregator search failed")
		return models.StreamFailure(msgAnimeNotFound)
	}
	if len(results) == 0 {
		return models.StreamFailure(msgAnimeNotFound)
	}

	// First search result is taken as the canonical match.
	animeID := results[0].ID

	var detail aggAnimeDetail
	if err := r.fetchAggregator(ctx, fmt.Sprintf("%s/anime/%s", r.aggregatorBase, url.PathEscape(animeID)), &detail); err != nil {
		logger.Debug().Err(err).Str("animeId", animeID).Msg("Aggregator anime detail failed")
		return models.StreamFailure(msgAnimeNotFound)
	}

	episodeID, found := findEpisodeID(detail.EpisodeList, req.Episode)
	if !found {
		return models.StreamFailure(fmt.Sprintf("Episode %d not found", req.Episode))
	}

	var sources aggEpisodeSources
	if err := r.fetchAggregator(ctx, fmt.Sprintf("%s/episode/%s", r.aggregatorBase, url.PathEscape(episodeID)), &sources); err != nil {
		logger.Debug().Err(err).Str("episodeId", episodeID).Msg("Aggregator episode sources failed")
		return models.StreamFailure(msgNoSource)
	}

	if streamURL, ok := r.pickSource(sources); ok {
		return models.StreamSuccess(streamURL)
	}
	return models.StreamFailure(msgNoSource)
}

// fetchAggregator performs one GET with a per-attempt timeout and decodes the
// {statusCode, data} envelope into out. A body that is not well-formed JSON —
// typically an HTML error page hiding behind a 200 — is reported as an error
// so callers never mistake it for an empty result.
func (r *resolver) fetchAggregator(ctx context.Context, endpoint string, out interface{}) error {
	attemptCtx, cancel := context.WithTimeout(ctx, r.attemptTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", config.GetUserAgent())
	httpReq.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("aggregator returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	var envelope aggEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("response is not well-formed JSON: %w", err)
	}
	if envelope.StatusCode != 0 && envelope.StatusCode != http.StatusOK {
		return fmt.Errorf("aggregator envelope status %d", envelope.StatusCode)
	}
	if len(envelope.Data) == 0 {
		return fmt.Errorf("aggregator envelope has no data")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode envelope data: %w", err)
	}
	return nil
}

// findEpisodeID locates the entry whose free-text title parses to the wanted
// episode number. Titles look like "Episode 12" or "Ep 12 Sub Indo"; the first
// run of digits is taken as the number.
func findEpisodeID(entries []aggEpisodeEntry, episode int) (string, bool) {
	for _, entry := range entries {
		match := episodeNumberPattern.FindString(entry.Title)
		if match == "" {
			continue
		}
		if n, err := strconv.Atoi(match); err == nil && n == episode {
			return entry.ID, true
		}
	}
	return "", false
}

// pickSource prefers the direct stream link, then a mirror from a preferred
// provider, then the first mirror with a URL at all.
func (r *resolver) pickSource(sources aggEpisodeSources) (string, bool) {
	if sources.StreamURL != "" {
		return sources.StreamURL, true
	}
	for _, mirror := range sources.Mirrors {
		if mirror.URL != "" && containsAny(mirror.Name, r.preferredMirror) {
			return mirror.URL, true
		}
	}
	for _, mirror := range sources.Mirrors {
		if mirror.URL != "" {
			return mirror.URL, true
		}
	}
	return "", false
}
