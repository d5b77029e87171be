// Package engine fetches rating-site HTML. A lightweight HTTP engine runs
// first; a headless-browser engine takes over after a staged delay when the
// HTTP engine fails or is served a challenge page.
package engine

import (
	"context"
	"errors"
	"time"
)

// ErrChallenge marks a response that is a bot challenge, not the page.
var ErrChallenge = errors.New("challenge page served")

// Engine is the interface that all fetch engines must implement.
type Engine interface {
	// Name returns the engine identifier (e.g. "http", "rod").
	Name() string

	// Fetch retrieves the page content for the given request.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	URL     string
	Headers map[string]string
	Timeout time.Duration
}

// FetchResult is the output of a successful engine fetch.
type FetchResult struct {
	HTML       string
	Title      string
	StatusCode int
	FinalURL   string
	EngineName string
}
