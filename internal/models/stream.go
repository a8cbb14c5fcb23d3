package models

import (
	"strings"

	"github.com/animeku/anistream/internal/apperrors"
)

// Server identifies a selectable source for obtaining a playable episode URL.
type Server int

const (
	ServerUnknown Server = iota
	ServerTrailer
	ServerKurama
	ServerSamehadaku
	ServerMovieBox
)

// serverNames maps each server to its canonical display name, as shown to users.
var serverNames = map[Server]string{
	ServerTrailer:    "Official Trailer",
	ServerKurama:     "Kuramanime",
	ServerSamehadaku: "Samehadaku",
	ServerMovieBox:   "MovieBox",
}

// serverAliases maps lower-cased short names and display names to servers.
// Historical display names included a parenthesised strategy suffix
// ("Kuramanime (Scrape)"), so matching is on the leading word.
var serverAliases = map[string]Server{
	"trailer":          ServerTrailer,
	"official trailer": ServerTrailer,
	"kurama":           ServerKurama,
	"kuramanime":       ServerKurama,
	"samehadaku":       ServerSamehadaku,
	"moviebox":         ServerMovieBox,
}

// String returns the canonical display name of the server.
func (s Server) String() string {
	if name, ok := serverNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ParseServer resolves a user-supplied server name to a Server.
// Matching is case-insensitive and tolerant of legacy suffixes like
// "Kuramanime (Scrape)". An unrecognised name returns ServerUnknown
// and an ErrUnsupportedServer; no network call should be made for
// such a request.
func ParseServer(name string) (Server, error) {
	cleaned := strings.ToLower(strings.TrimSpace(name))
	if idx := strings.IndexByte(cleaned, '('); idx >= 0 {
		cleaned = strings.TrimSpace(cleaned[:idx])
	}
	if s, ok := serverAliases[cleaned]; ok {
		return s, nil
	}
	// Leading-word match covers names like "kuramanime hd".
	if first, _, found := strings.Cut(cleaned, " "); found {
		if s, ok := serverAliases[first]; ok {
			return s, nil
		}
	}
	return ServerUnknown, apperrors.NewUnsupportedServerError(name)
}

// Servers returns all selectable servers in display order.
func Servers() []Server {
	return []Server{ServerTrailer, ServerKurama, ServerSamehadaku, ServerMovieBox}
}

// Titles holds the display-title variants of an anime used to build search
// queries. Any variant may be empty.
type Titles struct {
	Default  string `json:"default"`
	English  string `json:"english"`
	Japanese string `json:"japanese"`
}

// Preferred returns the best title for user-facing search links:
// English when present, else the default title.
func (t Titles) Preferred() string {
	if t.English != "" {
		return t.English
	}
	return t.Default
}

// IsEmpty reports whether no variant is set.
func (t Titles) IsEmpty() bool {
	return t.Default == "" && t.English == "" && t.Japanese == ""
}

// StreamResult is the single externally observable outcome of a resolution
// attempt: either a playable URL or a human-readable failure message.
type StreamResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// StreamSuccess builds a successful result carrying the playable URL.
func StreamSuccess(url string) StreamResult {
	return StreamResult{Success: true, URL: url}
}

// StreamFailure builds a failed result carrying a user-readable reason.
func StreamFailure(message string) StreamResult {
	return StreamResult{Success: false, Message: message}
}
