package models

// Episode is one entry of an anime's episode list. MalID doubles as the
// episode number; the metadata API has no separate sequence field.
type Episode struct {
	MalID  int      `json:"mal_id"`
	URL    string   `json:"url"`
	Title  string   `json:"title"`
	Aired  string   `json:"aired"`
	Score  *float64 `json:"score,omitempty"`
	Filler bool     `json:"filler"`
	Recap  bool     `json:"recap"`
}

// EpisodeList is a page of episodes plus its pagination info.
type EpisodeList struct {
	Data       []Episode  `json:"data"`
	Pagination Pagination `json:"pagination"`
}
