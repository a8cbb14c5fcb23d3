package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/animeku/anistream/internal/apperrors"
	"github.com/animeku/anistream/internal/models"
)

// AnimeByID fetches a single anime record. A 404 from the metadata API is
// surfaced as an ErrNotFound so callers can render a not-found state instead
// of a generic upstream failure.
func (c *client) AnimeByID(ctx context.Context, id int) (*models.Anime, error) {
	endpoint := fmt.Sprintf("%s/anime/%d", c.baseURL, id)

	var envelope struct {
		Data models.Anime `json:"data"`
	}
	if err := c.fetchJSON(ctx, "anime_by_id", endpoint, &envelope); err != nil {
		var upstream *apperrors.ErrUpstreamStatus
		if errors.As(err, &upstream) && upstream.StatusCode == 404 {
			return nil, apperrors.NewNotFoundError("anime", id)
		}
		return nil, err
	}
	return &envelope.Data, nil
}
