package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/animeku/anistream/internal/apperrors"
	"github.com/animeku/anistream/internal/cache"
	"github.com/animeku/anistream/internal/config"
	"github.com/animeku/anistream/internal/testutil"
)

// newTestClient points a metadata client at the given fake API, with an
// optional response cache.
func newTestClient(t *testing.T, baseURL string, withCache bool) Client {
	t.Helper()
	cfg := &config.Config{ClientTimeout: "5s"}
	cfg.Jikan.BaseURL = baseURL

	var responseCache cache.Cache
	if withCache {
		var err error
		responseCache, err = cache.New("memory", cache.ProviderConfig{Size: 32, TTL: time.Minute})
		if err != nil {
			t.Fatalf("create cache: %v", err)
		}
	}

	c := NewClient(cfg, responseCache)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestTopAnime(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/top/anime" {
			t.Errorf("path = %q, want /top/anime", r.URL.Path)
		}
		if got := r.URL.Query().Get("filter"); got != "bypopularity" {
			t.Errorf("filter = %q, want bypopularity", got)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testutil.AnimeListJSON(
			testutil.AnimeOptions{MalID: 21, Title: "One Piece", Score: 8.7},
			testutil.AnimeOptions{MalID: 5114, Title: "Fullmetal Alchemist: Brotherhood", Score: 9.1},
		)))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, false)
	list, err := c.TopAnime(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopAnime: %v", err)
	}
	if len(list.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(list.Data))
	}
	if list.Data[0].MalID != 21 || list.Data[0].Title != "One Piece" {
		t.Errorf("Data[0] = %+v", list.Data[0])
	}
	if list.Pagination.CurrentPage != 1 {
		t.Errorf("Pagination.CurrentPage = %d", list.Pagination.CurrentPage)
	}
}

func TestSearchAnime(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/anime" {
			t.Errorf("path = %q, want /anime", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "attack on titan" {
			t.Errorf("q = %q", got)
		}
		// The sfw flag must always ride along.
		if !r.URL.Query().Has("sfw") {
			t.Error("expected sfw query flag")
		}
		_, _ = w.Write([]byte(testutil.AnimeListJSON(
			testutil.AnimeOptions{MalID: 16498, Title: "Shingeki no Kyojin", TitleEnglish: "Attack on Titan"},
		)))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, false)
	list, err := c.SearchAnime(context.Background(), "attack on titan", 0)
	if err != nil {
		t.Fatalf("SearchAnime: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].TitleEnglish != "Attack on Titan" {
		t.Errorf("Data = %+v", list.Data)
	}
}

func TestAnimeByID(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/anime/16498" {
			t.Errorf("path = %q, want /anime/16498", r.URL.Path)
		}
		_, _ = w.Write([]byte(testutil.AnimeEnvelopeJSON(testutil.AnimeOptions{
			MalID:        16498,
			Title:        "Shingeki no Kyojin",
			TitleEnglish: "Attack on Titan",
			TrailerEmbed: "https://www.youtube.com/embed/LV-nazLVmgo",
		})))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, false)
	anime, err := c.AnimeByID(context.Background(), 16498)
	if err != nil {
		t.Fatalf("AnimeByID: %v", err)
	}
	if anime.MalID != 16498 {
		t.Errorf("MalID = %d", anime.MalID)
	}
	if anime.Trailer.EmbedURL != "https://www.youtube.com/embed/LV-nazLVmgo" {
		t.Errorf("Trailer.EmbedURL = %q", anime.Trailer.EmbedURL)
	}
}

func TestAnimeByID_NotFound(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, false)
	_, err := c.AnimeByID(context.Background(), 999999999)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	var notFound *apperrors.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *ErrNotFound", err)
	}
	if notFound.Resource != "anime" {
		t.Errorf("Resource = %q, want anime", notFound.Resource)
	}
}

func TestEpisodes(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/anime/21/episodes" {
			t.Errorf("path = %q, want /anime/21/episodes", r.URL.Path)
		}
		_, _ = w.Write([]byte(testutil.EpisodeListJSON(1, 2, 3)))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, false)
	list, err := c.Episodes(context.Background(), 21, 1)
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if len(list.Data) != 3 {
		t.Fatalf("len(Data) = %d, want 3", len(list.Data))
	}
	if list.Data[2].MalID != 3 {
		t.Errorf("Data[2].MalID = %d, want 3", list.Data[2].MalID)
	}
}

func TestFetch_UpstreamError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, false)
	_, err := c.TopAnime(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error for 429")
	}
	var upstream *apperrors.ErrUpstreamStatus
	if !errors.As(err, &upstream) {
		t.Fatalf("error = %v, want *ErrUpstreamStatus", err)
	}
	if upstream.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", upstream.StatusCode)
	}
	if upstream.Operation != "top_anime" {
		t.Errorf("Operation = %q, want top_anime", upstream.Operation)
	}
}

func TestFetch_CachedResponseSkipsNetwork(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(testutil.AnimeEnvelopeJSON(testutil.AnimeOptions{MalID: 1, Title: "Cowboy Bebop"})))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, true)

	for i := 0; i < 3; i++ {
		anime, err := c.AnimeByID(context.Background(), 1)
		if err != nil {
			t.Fatalf("AnimeByID call %d: %v", i, err)
		}
		if anime.Title != "Cowboy Bebop" {
			t.Errorf("call %d Title = %q", i, anime.Title)
		}
	}

	if got := hits.Load(); got != 1 {
		t.Errorf("upstream hit %d times, want 1 (later calls served from cache)", got)
	}
}

func TestFetch_RateLimitSpacing(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testutil.AnimeListJSON()))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, false)

	// Five uncached calls at 3 req/s must take at least four permit intervals.
	start := time.Now()
	for i := 0; i < 5; i++ {
		if _, err := c.SeasonNow(context.Background(), 1); err != nil {
			t.Fatalf("SeasonNow call %d: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	if minimum := 4 * (time.Second / jikanRateLimit); elapsed < minimum {
		t.Errorf("5 calls took %v, want at least %v under the rate limit", elapsed, minimum)
	}
}

func TestFetch_ContextCancelled(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testutil.AnimeListJSON()))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.TopAnime(ctx, 1); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
