package resolver

import (
	"strings"

	"github.com/animeku/anistream/internal/models"
)

const msgNoTrailer = "No Official Trailer Available"

// trailerParams starts playback immediately with sound on.
const trailerParams = "autoplay=1&mute=0"

// resolveTrailer is the only strategy with no network call: the anime record
// either carries an official trailer embed reference or it does not.
func resolveTrailer(embedURL string) models.StreamResult {
	if embedURL == "" {
		return models.StreamFailure(msgNoTrailer)
	}
	sep := "?"
	if strings.Contains(embedURL, "?") {
		sep = "&"
	}
	return models.StreamSuccess(embedURL + sep + trailerParams)
}
