package resolver

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/animeku/anistream/internal/models"
)

// defaultTemplates maps each scrapeable server to its search-page URL
// template. The %s placeholder receives the formatted, percent-encoded query.
func defaultTemplates() map[models.Server]string {
	return map[models.Server]string{
		models.ServerKurama:     "https://v9.kuramanime.tel/anime?search=%s",
		models.ServerSamehadaku: "https://samehadaku.care/?s=%s",
		models.ServerMovieBox:   "https://moviebox.ph/search?q=%s",
	}
}

var (
	nonQueryChars = regexp.MustCompile(`[^a-z0-9\s]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// FormatQuery normalizes a title for use in a scrape search URL: lower-cased,
// stripped of everything but letters, digits and spaces, whitespace collapsed,
// then percent-encoded. Deterministic: the same title always yields the same
// encoded query.
func FormatQuery(title string) string {
	q := strings.ToLower(title)
	q = nonQueryChars.ReplaceAllString(q, "")
	q = whitespaceRun.ReplaceAllString(q, " ")
	q = strings.TrimSpace(q)
	return url.QueryEscape(q)
}

// searchURL builds the scrape-proxy target page for a server and title.
// Returns false when no template is registered for the server.
func (r *resolver) searchURL(server models.Server, title string) (string, bool) {
	template, ok := r.templates[server]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(template, FormatQuery(title)), true
}

// FallbackURL builds a direct link to the server's search page with the raw
// title, for users to try by hand when automatic resolution fails.
func (r *resolver) FallbackURL(server models.Server, title string) string {
	if template, ok := r.templates[server]; ok {
		return fmt.Sprintf(template, url.QueryEscape(title))
	}
	return "https://www.google.com/search?q=" + url.QueryEscape("watch "+title)
}
