package metadata

import (
	"context"
	"fmt"

	"github.com/animeku/anistream/internal/models"
)

// Episodes fetches one page of an anime's episode list.
func (c *client) Episodes(ctx context.Context, id, page int) (*models.EpisodeList, error) {
	if page < 1 {
		page = 1
	}
	endpoint := fmt.Sprintf("%s/anime/%d/episodes?page=%d", c.baseURL, id, page)

	var list models.EpisodeList
	if err := c.fetchJSON(ctx, "episodes", endpoint, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
