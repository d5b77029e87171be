package engine

import (
	"context"
	"fmt"
)

// BrowserSession is the slice of a headless-browser session the rod engine
// drives. It is satisfied by *scraper.Session.
type BrowserSession interface {
	Initialize(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	HTML(ctx context.Context) (string, error)
	Close() error
}

// SessionFactory returns a fresh, uninitialized session.
type SessionFactory func() BrowserSession

// RodEngine renders the page in a dedicated headless browser session that is
// torn down after each fetch.
type RodEngine struct {
	newSession SessionFactory
}

func NewRodEngine(factory SessionFactory) *RodEngine {
	return &RodEngine{newSession: factory}
}

func (e *RodEngine) Name() string { return "rod" }

func (e *RodEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	if e.newSession == nil {
		return nil, fmt.Errorf("rod: session factory not configured")
	}
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	sess := e.newSession()
	if err := sess.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("rod: %w", err)
	}
	defer sess.Close()

	if err := sess.Navigate(ctx, req.URL); err != nil {
		return nil, fmt.Errorf("rod: %w", err)
	}
	body, err := sess.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("rod: %w", err)
	}
	title := extractTitle(body)
	if err := detectChallenge(0, title, body); err != nil {
		return nil, fmt.Errorf("rod: %w", err)
	}
	return &FetchResult{
		HTML:       body,
		Title:      title,
		StatusCode: 200,
		FinalURL:   req.URL,
		EngineName: e.Name(),
	}, nil
}
