package models

import (
	"fmt"
	"strings"
)

// ProxyConfig is one entry of a caller-supplied proxy pool.
type ProxyConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Address returns "host:port".
func (p ProxyConfig) Address() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

// HasCredentials reports whether the proxy needs authentication.
func (p ProxyConfig) HasCredentials() bool {
	return p.Username != "" || p.Password != ""
}

// GoogleSearchRequest is the payload for POST /api/v1/google/search.
type GoogleSearchRequest struct {
	// SearchString is the free-text query, e.g. "The Shawshank Redemption". Required.
	SearchString string `json:"searchString"`

	// Region localizes the result (ISO 3166 alpha-2, e.g. "US", "IN").
	Region string `json:"region,omitempty"`

	// ProxyList is the pool one proxy is drawn from per session.
	ProxyList []ProxyConfig `json:"proxyList,omitempty"`
}

// Normalize trims whitespace from the free-text fields.
func (r *GoogleSearchRequest) Normalize() {
	r.SearchString = strings.TrimSpace(r.SearchString)
	r.Region = strings.TrimSpace(r.Region)
}

// Validate returns an ErrCodeInvalidInput error when SearchString is empty.
func (r *GoogleSearchRequest) Validate() error {
	if r.SearchString == "" {
		return NewScrapeError(ErrCodeInvalidInput, MsgMissingSearchString, nil)
	}
	return nil
}

// RatingsRequest is the payload for POST /api/v1/ratings.
type RatingsRequest struct {
	IMDbID            string `json:"imdbId,omitempty"`
	RottenTomatoesURL string `json:"rottenTomatoesUrl,omitempty"`
}

// Normalize trims whitespace from both identifiers.
func (r *RatingsRequest) Normalize() {
	r.IMDbID = strings.TrimSpace(r.IMDbID)
	r.RottenTomatoesURL = strings.TrimSpace(r.RottenTomatoesURL)
}

// Validate requires at least one of the two sources.
func (r *RatingsRequest) Validate() error {
	if r.IMDbID == "" && r.RottenTomatoesURL == "" {
		return NewScrapeError(ErrCodeInvalidInput, MsgMissingRatingSource, nil)
	}
	return nil
}
