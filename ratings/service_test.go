package ratings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ChaitanyaVootla/movie-browser-api/models"
)

const (
	imdbFixture = `<html><head><script type="application/ld+json">
{"@type":"Movie","aggregateRating":{"ratingValue":9.3,"ratingCount":2900000}}
</script></head><body></body></html>`
	rtFixture = `<html><body><media-scorecard>
<rt-text slot="criticsScore">91%</rt-text><rt-link slot="criticsReviews">339 Reviews</rt-link>
</media-scorecard></body></html>`
)

// pageFetcher serves fixed pages by URL and records what was requested.
type pageFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	fail  map[string]error
	urls  []string
}

func (f *pageFetcher) FetchHTML(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()
	if err := f.fail[url]; err != nil {
		return "", err
	}
	html, ok := f.pages[url]
	if !ok {
		return "", errors.New("404 not found")
	}
	return html, nil
}

const shawshankRT = "https://www.rottentomatoes.com/m/shawshank_redemption"

func TestServiceFetch_BothSources(t *testing.T) {
	f := &pageFetcher{pages: map[string]string{
		IMDbTitleURL("tt0111161"): imdbFixture,
		shawshankRT:               rtFixture,
	}}
	svc := NewService(f, time.Second)

	resp, err := svc.Fetch(context.Background(), models.RatingsRequest{
		IMDbID:            " tt0111161 ",
		RottenTomatoesURL: "m/shawshank_redemption",
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resp.IMDb == nil || resp.IMDb.Rating == nil || *resp.IMDb.Rating != 9.3 {
		t.Errorf("imdb = %+v, want rating 9.3", resp.IMDb)
	}
	if resp.IMDb.RatingCount == nil || *resp.IMDb.RatingCount != 2900000 {
		t.Errorf("imdb count = %v, want 2900000", resp.IMDb.RatingCount)
	}
	rt := resp.RottenTomatoes
	if rt == nil || rt.Critic == nil || rt.Critic.Score == nil || *rt.Critic.Score != 91 {
		t.Fatalf("rottenTomatoes = %+v, want critic score 91", rt)
	}
	if rt.SourceURL != shawshankRT {
		t.Errorf("rt SourceURL = %q, want %q", rt.SourceURL, shawshankRT)
	}
	if rt.Audience != nil {
		t.Errorf("audience = %+v, want nil", rt.Audience)
	}
}

func TestServiceFetch_PartialFailure(t *testing.T) {
	f := &pageFetcher{
		pages: map[string]string{shawshankRT: rtFixture},
		fail:  map[string]error{IMDbTitleURL("tt0111161"): errors.New("connection reset")},
	}
	resp, err := NewService(f, 0).Fetch(context.Background(), models.RatingsRequest{
		IMDbID:            "tt0111161",
		RottenTomatoesURL: shawshankRT,
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	imdb := resp.IMDb
	if imdb == nil || imdb.Error == nil {
		t.Fatalf("imdb = %+v, want error result", imdb)
	}
	if *imdb.Error != "IMDb fetch failed: connection reset" {
		t.Errorf("imdb error = %q", *imdb.Error)
	}
	if imdb.Rating != nil || imdb.RatingCount != nil {
		t.Errorf("imdb data should be null on failure: %+v", imdb)
	}
	if resp.RottenTomatoes == nil || resp.RottenTomatoes.Error != nil || resp.RottenTomatoes.Critic == nil {
		t.Errorf("rottenTomatoes should be unaffected: %+v", resp.RottenTomatoes)
	}
}

func TestServiceFetch_RottenTomatoesFailure(t *testing.T) {
	f := &pageFetcher{pages: map[string]string{}}
	resp, err := NewService(f, 0).Fetch(context.Background(), models.RatingsRequest{RottenTomatoesURL: shawshankRT})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	rt := resp.RottenTomatoes
	if rt == nil || rt.Error == nil || *rt.Error != "Rotten Tomatoes fetch failed: 404 not found" {
		t.Fatalf("rottenTomatoes = %+v, want prefixed error", rt)
	}
	if rt.Critic != nil || rt.Audience != nil {
		t.Errorf("sides should be nil on failure: %+v", rt)
	}
}

func TestServiceFetch_UnrequestedSourceIsNil(t *testing.T) {
	f := &pageFetcher{pages: map[string]string{IMDbTitleURL("tt0111161"): imdbFixture}}
	resp, err := NewService(f, 0).Fetch(context.Background(), models.RatingsRequest{IMDbID: "tt0111161"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resp.RottenTomatoes != nil {
		t.Errorf("rottenTomatoes = %+v, want nil", resp.RottenTomatoes)
	}
	if len(f.urls) != 1 {
		t.Errorf("fetched %v, want only the IMDb page", f.urls)
	}
}

func TestServiceFetch_Validation(t *testing.T) {
	f := &pageFetcher{}
	_, err := NewService(f, 0).Fetch(context.Background(), models.RatingsRequest{IMDbID: "  "})
	if !models.IsCode(err, models.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want %s", err, models.ErrCodeInvalidInput)
	}
	if se := models.AsScrapeError(err); se.Message != models.MsgMissingRatingSource {
		t.Errorf("message = %q, want %q", se.Message, models.MsgMissingRatingSource)
	}
	if len(f.urls) != 0 {
		t.Errorf("validation failure still fetched %v", f.urls)
	}
}

func TestServiceFetch_RunsSourcesConcurrently(t *testing.T) {
	var arrived sync.WaitGroup
	arrived.Add(2)
	both := make(chan struct{})
	go func() {
		arrived.Wait()
		close(both)
	}()

	fetch := FetcherFunc(func(ctx context.Context, url string) (string, error) {
		arrived.Done()
		select {
		case <-both:
			return "<html></html>", nil
		case <-time.After(2 * time.Second):
			return "", errors.New("sources were fetched one after another")
		}
	})
	resp, err := NewService(fetch, 0).Fetch(context.Background(), models.RatingsRequest{
		IMDbID:            "tt0111161",
		RottenTomatoesURL: shawshankRT,
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resp.IMDb.Error != nil {
		t.Errorf("imdb error: %s", *resp.IMDb.Error)
	}
	if resp.RottenTomatoes.Error != nil {
		t.Errorf("rt error: %s", *resp.RottenTomatoes.Error)
	}
}

func TestServiceFetch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetch := FetcherFunc(func(ctx context.Context, _ string) (string, error) {
		return "", ctx.Err()
	})
	_, err := NewService(fetch, 0).Fetch(ctx, models.RatingsRequest{IMDbID: "tt0111161"})
	if !models.IsCode(err, models.ErrCodeTimeout) {
		t.Errorf("err = %v, want %s", err, models.ErrCodeTimeout)
	}
}
