package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestAnimeTitleVariants(t *testing.T) {
	t.Parallel()
	anime := &Anime{
		Title:         "Shingeki no Kyojin",
		TitleEnglish:  "Attack on Titan",
		TitleJapanese: "進撃の巨人",
	}

	titles := anime.TitleVariants()
	if titles.Default != anime.Title {
		t.Errorf("Default = %q, want %q", titles.Default, anime.Title)
	}
	if titles.English != anime.TitleEnglish {
		t.Errorf("English = %q, want %q", titles.English, anime.TitleEnglish)
	}
	if titles.Japanese != anime.TitleJapanese {
		t.Errorf("Japanese = %q, want %q", titles.Japanese, anime.TitleJapanese)
	}
}

func TestAnimeUnmarshal_PartialRecord(t *testing.T) {
	t.Parallel()
	// The metadata API omits or nulls fields on lesser-known entries; a
	// partial record must still decode with zero values for the gaps.
	raw := `{
		"mal_id": 5114,
		"title": "Fullmetal Alchemist: Brotherhood",
		"title_english": null,
		"trailer": {"youtube_id": "", "url": "", "embed_url": ""},
		"score": 9.1,
		"genres": []
	}`

	var anime Anime
	if err := json.Unmarshal([]byte(raw), &anime); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if anime.MalID != 5114 {
		t.Errorf("MalID = %d, want 5114", anime.MalID)
	}
	if anime.TitleEnglish != "" {
		t.Errorf("TitleEnglish = %q, want empty for null", anime.TitleEnglish)
	}
	if anime.Trailer.EmbedURL != "" {
		t.Errorf("Trailer.EmbedURL = %q, want empty", anime.Trailer.EmbedURL)
	}
	if anime.Score != 9.1 {
		t.Errorf("Score = %v, want 9.1", anime.Score)
	}
	if len(anime.Genres) != 0 {
		t.Errorf("Genres = %v, want empty", anime.Genres)
	}
}
