// Package api wires the HTTP routes for the extraction service.
package api

import (
	"time"

	"github.com/ChaitanyaVootla/movie-browser-api/api/handler"
	"github.com/ChaitanyaVootla/movie-browser-api/api/middleware"
	"github.com/ChaitanyaVootla/movie-browser-api/cache"
	"github.com/ChaitanyaVootla/movie-browser-api/config"
	"github.com/ChaitanyaVootla/movie-browser-api/models"
	"github.com/gin-gonic/gin"
)

// Deps are the services behind the routes. Caches may be nil.
type Deps struct {
	Searcher     handler.Searcher
	Ratings      handler.RatingsFetcher
	GoogleCache  *cache.Cache[*models.GoogleSearchResult]
	RatingsCache *cache.Cache[*models.RatingsResponse]

	// BrowserPath resolves the headless-browser executable for health checks.
	BrowserPath func() (string, error)

	// Done stops the router's background goroutines when closed.
	Done <-chan struct{}
}

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → RequestID → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health sits outside auth so monitoring probes always work.
func NewRouter(cfg *config.Config, deps Deps, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	v1.GET("/health", handler.Health(deps.BrowserPath, startTime))

	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit, deps.Done))

	protected.POST("/google/search", handler.GoogleSearch(deps.Searcher, deps.GoogleCache, cfg.Google.Timeout))
	protected.POST("/ratings", handler.Ratings(deps.Ratings, deps.RatingsCache))

	return r
}
