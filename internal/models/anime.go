package models

// Images holds the poster URLs for an anime in both JPG and WebP formats.
type Images struct {
	JPG  ImageSet `json:"jpg"`
	WEBP ImageSet `json:"webp"`
}

// ImageSet holds the URLs for the available image sizes of one format.
type ImageSet struct {
	ImageURL      string `json:"image_url"`
	SmallImageURL string `json:"small_image_url,omitempty"`
	LargeImageURL string `json:"large_image_url,omitempty"`
}

// Trailer is the official trailer reference attached to an anime record.
// EmbedURL is the only field the resolver cares about; an empty EmbedURL
// means no official trailer is available.
type Trailer struct {
	YoutubeID string `json:"youtube_id"`
	URL       string `json:"url"`
	EmbedURL  string `json:"embed_url"`
}

// Genre is a single genre tag on an anime record.
type Genre struct {
	MalID int    `json:"mal_id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

// Anime is an immutable snapshot of one anime record from the metadata API.
// Any of the three title variants may be empty.
type Anime struct {
	MalID         int     `json:"mal_id"`
	URL           string  `json:"url"`
	Images        Images  `json:"images"`
	Trailer       Trailer `json:"trailer"`
	Title         string  `json:"title"`
	TitleEnglish  string  `json:"title_english"`
	TitleJapanese string  `json:"title_japanese"`
	Type          string  `json:"type"`
	Source        string  `json:"source"`
	Episodes      int     `json:"episodes"`
	Status        string  `json:"status"`
	Airing        bool    `json:"airing"`
	Duration      string  `json:"duration"`
	Rating        string  `json:"rating"`
	Score         float64 `json:"score"`
	Rank          int     `json:"rank"`
	Popularity    int     `json:"popularity"`
	Members       int     `json:"members"`
	Synopsis      string  `json:"synopsis"`
	Season        string  `json:"season"`
	Year          int     `json:"year"`
	Genres        []Genre `json:"genres"`
}

// TitleVariants returns the search titles of the record in resolver priority order.
func (a *Anime) TitleVariants() Titles {
	return Titles{
		Default:  a.Title,
		English:  a.TitleEnglish,
		Japanese: a.TitleJapanese,
	}
}

// Pagination mirrors the metadata API's pagination envelope.
type Pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
	CurrentPage     int  `json:"current_page"`
	Items           struct {
		Count   int `json:"count"`
		Total   int `json:"total"`
		PerPage int `json:"per_page"`
	} `json:"items"`
}

// AnimeList is a page of anime records plus its pagination info.
type AnimeList struct {
	Data       []Anime    `json:"data"`
	Pagination Pagination `json:"pagination"`
}
