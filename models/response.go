package models

// Rating is one third-party rating badge from the knowledge panel.
type Rating struct {
	// Name identifies the rating brand, e.g. "IMDb", "Rotten Tomatoes" or "Google".
	Name string `json:"name"`

	// Rating is the raw display value, e.g. "8.7/10" or "91%".
	Rating string `json:"rating"`

	Link string `json:"link"`
}

// WatchOption is one provider offering the title.
type WatchOption struct {
	Link  string `json:"link"`
	Name  string `json:"name"`
	Price string `json:"price,omitempty"`
}

// GoogleSearchResult is the merged knowledge-panel extraction.
type GoogleSearchResult struct {
	Ratings         []Rating      `json:"ratings"`
	AllWatchOptions []WatchOption `json:"allWatchOptions"`
	IMDbID          *string       `json:"imdbId"`
	DirectorName    *string       `json:"directorName"`

	// DebugText holds the full page text, only when no ratings were found.
	DebugText string `json:"debugText,omitempty"`

	Region string `json:"region,omitempty"`
}

// IMDbResult is the main-rating family output.
type IMDbResult struct {
	Rating      *float64 `json:"rating"`
	RatingCount *int64   `json:"ratingCount"`
	SourceURL   string   `json:"sourceUrl"`
	Error       *string  `json:"error"`
}

// CriticAudienceData is one side of a critic/audience split.
type CriticAudienceData struct {
	Score       *int    `json:"score"`
	RatingCount *int64  `json:"ratingCount"`
	Certified   *bool   `json:"certified"`
	Sentiment   *string `json:"sentiment"`
	Consensus   *string `json:"consensus"`
}

// Empty reports whether none of score, count or consensus is known.
func (d *CriticAudienceData) Empty() bool {
	return d == nil || (d.Score == nil && d.RatingCount == nil && d.Consensus == nil)
}

// RottenTomatoesResult is the critic/audience family output.
type RottenTomatoesResult struct {
	Critic    *CriticAudienceData `json:"critic"`
	Audience  *CriticAudienceData `json:"audience"`
	SourceURL string              `json:"sourceUrl"`
	Error     *string             `json:"error"`
}

// RatingsResponse combines both sources. A nil side was not requested.
type RatingsResponse struct {
	IMDb           *IMDbResult           `json:"imdb"`
	RottenTomatoes *RottenTomatoesResult `json:"rottenTomatoes"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
	Browser string `json:"browser"`
}
