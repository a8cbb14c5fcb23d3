package metadata

import (
	"context"
	"fmt"
	"net/url"

	"github.com/animeku/anistream/internal/models"
)

// TopAnime lists the most popular anime, one page at a time.
func (c *client) TopAnime(ctx context.Context, page int) (*models.AnimeList, error) {
	if page < 1 {
		page = 1
	}
	endpoint := fmt.Sprintf("%s/top/anime?page=%d&filter=bypopularity", c.baseURL, page)

	var list models.AnimeList
	if err := c.fetchJSON(ctx, "top_anime", endpoint, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// SeasonNow lists anime airing in the current season, one page at a time.
func (c *client) SeasonNow(ctx context.Context, page int) (*models.AnimeList, error) {
	if page < 1 {
		page = 1
	}
	endpoint := fmt.Sprintf("%s/seasons/now?page=%d", c.baseURL, page)

	var list models.AnimeList
	if err := c.fetchJSON(ctx, "season_now", endpoint, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// SearchAnime runs a safe-for-work title search against the metadata API.
func (c *client) SearchAnime(ctx context.Context, query string, page int) (*models.AnimeList, error) {
	if page < 1 {
		page = 1
	}
	endpoint := fmt.Sprintf("%s/anime?q=%s&page=%d&sfw", c.baseURL, url.QueryEscape(query), page)

	var list models.AnimeList
	if err := c.fetchJSON(ctx, "search_anime", endpoint, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
