package testutil

import (
	"fmt"

	"github.com/goccy/go-json"
)

// AnimeOptions contains options for generating a metadata API anime record.
type AnimeOptions struct {
	MalID         int
	Title         string
	TitleEnglish  string
	TitleJapanese string
	Episodes      int
	Score         float64
	Synopsis      string
	TrailerEmbed  string
	Genres        []string
}

// AnimeJSON generates one anime record object as the metadata API returns it.
func AnimeJSON(opts AnimeOptions) string {
	genres := make([]map[string]interface{}, 0, len(opts.Genres))
	for i, name := range opts.Genres {
		genres = append(genres, map[string]interface{}{
			"mal_id": i + 1,
			"type":   "anime",
			"name":   name,
			"url":    fmt.Sprintf("https://myanimelist.net/anime/genre/%d", i+1),
		})
	}

	record := map[string]interface{}{
		"mal_id":         opts.MalID,
		"url":            fmt.Sprintf("https://myanimelist.net/anime/%d", opts.MalID),
		"title":          opts.Title,
		"title_english":  opts.TitleEnglish,
		"title_japanese": opts.TitleJapanese,
		"episodes":       opts.Episodes,
		"score":          opts.Score,
		"synopsis":       opts.Synopsis,
		"genres":         genres,
		"images": map[string]interface{}{
			"jpg": map[string]interface{}{
				"image_url":       fmt.Sprintf("https://cdn.myanimelist.net/images/anime/%d.jpg", opts.MalID),
				"large_image_url": fmt.Sprintf("https://cdn.myanimelist.net/images/anime/%dl.jpg", opts.MalID),
			},
			"webp": map[string]interface{}{
				"image_url": fmt.Sprintf("https://cdn.myanimelist.net/images/anime/%d.webp", opts.MalID),
			},
		},
		"trailer": map[string]interface{}{
			"youtube_id": "",
			"url":        "",
			"embed_url":  opts.TrailerEmbed,
		},
	}
	return mustMarshal(record)
}

// AnimeEnvelopeJSON wraps a single anime record in the {data} envelope.
func AnimeEnvelopeJSON(opts AnimeOptions) string {
	return fmt.Sprintf(`{"data":%s}`, AnimeJSON(opts))
}

// AnimeListJSON wraps anime records in the {data, pagination} envelope.
func AnimeListJSON(animes ...AnimeOptions) string {
	records := make([]json.RawMessage, 0, len(animes))
	for _, a := range animes {
		records = append(records, json.RawMessage(AnimeJSON(a)))
	}
	return mustMarshal(map[string]interface{}{
		"data": records,
		"pagination": map[string]interface{}{
			"last_visible_page": 1,
			"has_next_page":     false,
			"current_page":      1,
			"items": map[string]interface{}{
				"count":    len(animes),
				"total":    len(animes),
				"per_page": 25,
			},
		},
	})
}

// EpisodeListJSON builds a {data, pagination} episode-list envelope where each
// episode's mal_id doubles as its number.
func EpisodeListJSON(numbers ...int) string {
	episodes := make([]map[string]interface{}, 0, len(numbers))
	for _, n := range numbers {
		episodes = append(episodes, map[string]interface{}{
			"mal_id": n,
			"title":  fmt.Sprintf("Episode %d", n),
			"aired":  "2024-01-01T00:00:00+00:00",
		})
	}
	return mustMarshal(map[string]interface{}{
		"data": episodes,
		"pagination": map[string]interface{}{
			"last_visible_page": 1,
			"has_next_page":     false,
		},
	})
}

// SearchCandidate mirrors one video-search provider result.
type SearchCandidate struct {
	Author  string `json:"author"`
	Title   string `json:"title"`
	VideoID string `json:"videoId"`
}

// SearchCandidatesJSON builds a provider search response array.
func SearchCandidatesJSON(candidates ...SearchCandidate) string {
	if len(candidates) == 0 {
		return "[]"
	}
	return mustMarshal(candidates)
}

// ScrapeItem mirrors one item in the scraping service's response.
type ScrapeItem struct {
	Type     string `json:"type,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
	EmbedURL string `json:"embedUrl,omitempty"`
}

// ScrapeResponseJSON builds the scraping service's {success, data} response.
func ScrapeResponseJSON(success bool, items ...ScrapeItem) string {
	if items == nil {
		items = []ScrapeItem{}
	}
	return mustMarshal(map[string]interface{}{
		"success": success,
		"data":    items,
	})
}

// AggregatorEnvelopeJSON wraps already-encoded data in the aggregator's
// {statusCode, data} envelope.
func AggregatorEnvelopeJSON(statusCode int, data string) string {
	return fmt.Sprintf(`{"statusCode":%d,"data":%s}`, statusCode, data)
}

func mustMarshal(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
