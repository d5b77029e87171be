package ratings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ChaitanyaVootla/movie-browser-api/models"
	"golang.org/x/sync/errgroup"
)

// Fetcher retrieves raw page HTML.
type Fetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) (string, error)

func (f FetcherFunc) FetchHTML(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// Service fetches and parses both rating sources.
type Service struct {
	fetcher Fetcher
	timeout time.Duration
}

// NewService creates a Service. timeout bounds each source fetch; zero
// disables the per-source deadline.
func NewService(fetcher Fetcher, timeout time.Duration) *Service {
	return &Service{fetcher: fetcher, timeout: timeout}
}

// Fetch runs the requested sources concurrently. A source that fails gets
// an error result; the other is unaffected. A source that was not requested
// stays nil. The only returned errors are validation and cancellation.
func (s *Service) Fetch(ctx context.Context, req models.RatingsRequest) (*models.RatingsResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp models.RatingsResponse
	var g errgroup.Group

	if req.IMDbID != "" {
		g.Go(func() error {
			resp.IMDb = s.fetchIMDb(ctx, req.IMDbID)
			return nil
		})
	}
	if req.RottenTomatoesURL != "" {
		g.Go(func() error {
			resp.RottenTomatoes = s.fetchRottenTomatoes(ctx, req.RottenTomatoesURL)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeTimeout, "ratings fetch cancelled", err)
	}
	return &resp, nil
}

func (s *Service) fetchIMDb(ctx context.Context, id string) *models.IMDbResult {
	url := IMDbTitleURL(id)
	html, err := s.fetch(ctx, url)
	if err != nil {
		slog.Warn("imdb fetch failed", "url", url, "error", err)
		msg := fmt.Sprintf("IMDb fetch failed: %v", err)
		return &models.IMDbResult{SourceURL: url, Error: &msg}
	}
	return ParseIMDb(html, url)
}

func (s *Service) fetchRottenTomatoes(ctx context.Context, raw string) *models.RottenTomatoesResult {
	url := RottenTomatoesURL(raw)
	html, err := s.fetch(ctx, url)
	if err != nil {
		slog.Warn("rotten tomatoes fetch failed", "url", url, "error", err)
		msg := fmt.Sprintf("Rotten Tomatoes fetch failed: %v", err)
		return &models.RottenTomatoesResult{SourceURL: url, Error: &msg}
	}
	return ParseRottenTomatoes(html, url)
}

func (s *Service) fetch(ctx context.Context, url string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	start := time.Now()
	html, err := s.fetcher.FetchHTML(ctx, url)
	if err == nil {
		slog.Debug("ratings page fetched", "url", url, "bytes", len(html), "elapsed", time.Since(start))
	}
	return html, err
}
