package handler

import (
	"net/http"
	"time"

	"github.com/ChaitanyaVootla/movie-browser-api/models"
	"github.com/gin-gonic/gin"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Health returns a handler for GET /api/v1/health.
//
// browser resolves the headless-browser executable. Without one the status
// is "degraded" and browser is reported as "unavailable".
func Health(browser func() (string, error), startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, path := "degraded", "unavailable"
		if browser != nil {
			if p, err := browser(); err == nil {
				status, path = "healthy", p
			}
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: Version,
			Browser: path,
		})
	}
}
