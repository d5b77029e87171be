// Package google extracts ratings, the director credit and watch providers
// from a Google knowledge panel using a headless browser session.
package google

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ChaitanyaVootla/movie-browser-api/dom"
	"github.com/ChaitanyaVootla/movie-browser-api/models"
)

const (
	// MaxRetries bounds attempts against bot-challenge pages.
	MaxRetries = 3

	// Cooldown separates a torn-down session from its replacement.
	Cooldown = 5 * time.Second

	minStepDelay = 50 * time.Millisecond
	maxStepDelay = 1500 * time.Millisecond
)

// Session is the browser surface the extractor drives. Initialize must pick
// a fresh proxy and fingerprint each time it runs after Close.
type Session interface {
	Initialize(ctx context.Context) error
	Close() error
	Navigate(ctx context.Context, url string) error
	Scroll(ctx context.Context, deltaY float64) error
	Document(ctx context.Context) (dom.Document, error)
}

// SessionFactory builds a session that draws proxies from pool.
type SessionFactory func(pool []models.ProxyConfig) Session

// Options tunes an Extractor. Zero values take defaults.
type Options struct {
	// WaitTimeout bounds waits for optional panel elements.
	WaitTimeout time.Duration

	// DefaultProxies is used when a request has no proxy list.
	DefaultProxies []models.ProxyConfig

	// Sleeper paces cooldowns, scrolling and inter-step delays.
	Sleeper Sleeper

	MaxRetries int
	Cooldown   time.Duration
}

// Extractor runs knowledge-panel searches. It holds no per-call state and
// is safe for concurrent use; every Search gets its own session.
type Extractor struct {
	newSession SessionFactory
	opts       Options
}

// NewExtractor creates an Extractor.
func NewExtractor(factory SessionFactory, opts Options) *Extractor {
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = 5 * time.Second
	}
	if opts.Sleeper == nil {
		opts.Sleeper = WallClock
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = MaxRetries
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = Cooldown
	}
	return &Extractor{newSession: factory, opts: opts}
}

type phase int

const (
	phaseInit phase = iota
	phaseNavigated
	phaseExtracted
	phaseRetrying
)

// searchRun is the state of one Search call.
type searchRun struct {
	req        models.GoogleSearchRequest
	session    Session
	phase      phase
	retryCount int
	searchURL  string
	doc        dom.Document
	result     *models.GoogleSearchResult
}

// Search runs one knowledge-panel lookup. The session is closed on every
// return path. Only bot-challenge pages are retried.
func (e *Extractor) Search(ctx context.Context, req models.GoogleSearchRequest) (*models.GoogleSearchResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pool := req.ProxyList
	if len(pool) == 0 {
		pool = e.opts.DefaultProxies
	}
	run := &searchRun{req: req, session: e.newSession(pool)}
	defer func() {
		if err := run.session.Close(); err != nil {
			slog.Warn("closing browser session", "error", err)
		}
	}()

	if err := run.session.Initialize(ctx); err != nil {
		return nil, err
	}

	for {
		var err error
		switch run.phase {
		case phaseInit:
			err = e.navigate(ctx, run)
		case phaseNavigated:
			err = e.inspect(ctx, run)
		case phaseRetrying:
			err = e.rotate(ctx, run)
		case phaseExtracted:
			return run.result, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (e *Extractor) navigate(ctx context.Context, run *searchRun) error {
	run.searchURL = BuildSearchURL(run.req.SearchString, run.req.Region)
	if err := run.session.Navigate(ctx, run.searchURL); err != nil {
		return err
	}
	humanScroll(ctx, run.session, e.opts.Sleeper)

	doc, err := run.session.Document(ctx)
	if err != nil {
		return models.NewScrapeError(models.ErrCodeExtraction, "page unavailable", err)
	}
	run.doc = doc
	run.phase = phaseNavigated
	return nil
}

// inspect checks for a challenge page and extracts when the page is clean.
func (e *Extractor) inspect(ctx context.Context, run *searchRun) error {
	text, err := run.doc.BodyText()
	if err != nil {
		return models.NewScrapeError(models.ErrCodeExtraction, "failed to read page text", err)
	}

	if isBotChallenge(text) {
		run.retryCount++
		slog.Warn("bot challenge detected",
			"query", run.req.SearchString,
			"attempt", run.retryCount,
			"maxRetries", e.opts.MaxRetries,
		)
		if run.retryCount >= e.opts.MaxRetries {
			return models.NewScrapeError(models.ErrCodeBotDetected,
				fmt.Sprintf("bot detection limit reached after %d attempts", run.retryCount), nil)
		}
		run.phase = phaseRetrying
		return nil
	}

	run.retryCount = 0
	result, err := e.extract(ctx, run.doc, run.searchURL)
	if err != nil {
		if ctx.Err() != nil {
			return models.NewScrapeError(models.ErrCodeTimeout, "canceled during panel extraction", err)
		}
		return models.NewScrapeError(models.ErrCodeExtraction, "knowledge panel extraction failed", err)
	}
	if len(result.Ratings) == 0 {
		result.DebugText = text
	}
	result.Region = run.req.Region
	run.result = result
	run.phase = phaseExtracted
	return nil
}

// rotate tears the session down and brings it back with a new proxy and
// fingerprint after the cooldown.
func (e *Extractor) rotate(ctx context.Context, run *searchRun) error {
	if err := run.session.Close(); err != nil {
		slog.Warn("closing challenged session", "error", err)
	}
	if err := e.opts.Sleeper.Sleep(ctx, e.opts.Cooldown); err != nil {
		return models.NewScrapeError(models.ErrCodeTimeout, "canceled during bot cooldown", err)
	}
	if err := run.session.Initialize(ctx); err != nil {
		return err
	}
	run.doc = nil
	run.phase = phaseInit
	return nil
}

// extract reads ratings, director and watch options, pausing a random
// interval between steps.
func (e *Extractor) extract(ctx context.Context, doc dom.Document, searchURL string) (*models.GoogleSearchResult, error) {
	ratings, err := extractRatings(doc, searchURL)
	if err != nil {
		return nil, err
	}
	if err := e.pause(ctx); err != nil {
		return nil, err
	}

	director, err := extractDirector(doc)
	if err != nil {
		return nil, fmt.Errorf("director: %w", err)
	}
	if err := e.pause(ctx); err != nil {
		return nil, err
	}

	var all []models.WatchOption
	steps := []watchStep{
		primaryWatchOptions(doc, e.opts.WaitTimeout),
		secondaryWatchOptions(doc, e.opts.WaitTimeout),
		fallbackWatchOption(doc),
	}
	for _, step := range steps {
		slog.Debug("watch options source",
			"source", step.source,
			"outcome", step.outcome.String(),
			"options", len(step.options),
			"error", step.err,
		)
		all = append(all, step.options...)
	}

	result := &models.GoogleSearchResult{
		Ratings:         ratings.ratings,
		AllWatchOptions: SquashWatchOptions(all),
		IMDbID:          ratings.imdbID,
		DirectorName:    director,
	}
	if result.Ratings == nil {
		result.Ratings = []models.Rating{}
	}
	return result, nil
}

func (e *Extractor) pause(ctx context.Context) error {
	return e.opts.Sleeper.Sleep(ctx, randDuration(minStepDelay, maxStepDelay))
}
