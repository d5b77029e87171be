package handler

import (
	"context"
	"net/http"

	"github.com/ChaitanyaVootla/movie-browser-api/cache"
	"github.com/ChaitanyaVootla/movie-browser-api/models"
	"github.com/gin-gonic/gin"
)

// RatingsFetcher fetches and parses the requested rating sources.
type RatingsFetcher interface {
	Fetch(ctx context.Context, req models.RatingsRequest) (*models.RatingsResponse, error)
}

// Ratings returns a handler for POST /api/v1/ratings. Responses where every
// requested source succeeded are cached.
func Ratings(f RatingsFetcher, cc *cache.Cache[*models.RatingsResponse]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RatingsRequest
		if !bindJSON(c, &req) {
			return
		}
		req.Normalize()
		if err := req.Validate(); err != nil {
			respondError(c, err)
			return
		}

		key := cache.RatingsKey(req)
		if cc != nil {
			if cached, hit := cc.Get(key); hit {
				c.Header("X-Cache", "hit")
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		resp, err := f.Fetch(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		if cc != nil && fullySucceeded(resp) {
			cc.Set(key, resp)
			c.Header("X-Cache", "miss")
		}
		c.JSON(http.StatusOK, resp)
	}
}

func fullySucceeded(resp *models.RatingsResponse) bool {
	if resp.IMDb != nil && resp.IMDb.Error != nil {
		return false
	}
	if resp.RottenTomatoes != nil && resp.RottenTomatoes.Error != nil {
		return false
	}
	return true
}
