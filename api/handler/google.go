package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ChaitanyaVootla/movie-browser-api/cache"
	"github.com/ChaitanyaVootla/movie-browser-api/models"
	"github.com/gin-gonic/gin"
)

// Searcher runs one knowledge-panel lookup.
type Searcher interface {
	Search(ctx context.Context, req models.GoogleSearchRequest) (*models.GoogleSearchResult, error)
}

// GoogleSearch returns a handler for POST /api/v1/google/search.
//
// Results with ratings are cached by query and region. A request carrying
// its own proxy list skips the cache read but still refreshes the entry.
// A positive timeout is an outer bound on the whole lookup, retries
// included; zero leaves only the per-operation limits.
func GoogleSearch(s Searcher, cc *cache.Cache[*models.GoogleSearchResult], timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.GoogleSearchRequest
		if !bindJSON(c, &req) {
			return
		}
		req.Normalize()
		if err := req.Validate(); err != nil {
			respondError(c, err)
			return
		}

		key := cache.GoogleKey(req)
		if cc != nil && len(req.ProxyList) == 0 {
			if cached, hit := cc.Get(key); hit {
				c.Header("X-Cache", "hit")
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		ctx := c.Request.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		start := time.Now()
		result, err := s.Search(ctx, req)
		if err != nil {
			respondError(c, err)
			return
		}
		slog.Info("google search complete",
			"request_id", c.GetString("request_id"),
			"query", req.SearchString,
			"region", req.Region,
			"ratings", len(result.Ratings),
			"watchOptions", len(result.AllWatchOptions),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)

		if cc != nil && len(result.Ratings) > 0 {
			cc.Set(key, result)
			c.Header("X-Cache", "miss")
		}
		c.JSON(http.StatusOK, result)
	}
}
