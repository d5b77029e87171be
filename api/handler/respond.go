package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ChaitanyaVootla/movie-browser-api/models"
	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body into v. An empty body decodes as {} so
// that field validation, not the binder, produces the 400 message.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid JSON body",
			Message: err.Error(),
			Code:    models.ErrCodeInvalidInput,
		})
		return false
	}
	return true
}

// respondError maps err to a status and writes the JSON error body.
// Validation errors carry their message in "error"; everything that maps to
// 500 is reported as "Internal server error" with the cause in "message".
func respondError(c *gin.Context, err error) {
	se := models.AsScrapeError(err)
	status := mapErrorToStatus(se)
	if status != http.StatusInternalServerError {
		c.JSON(status, models.ErrorResponse{Error: se.Message, Code: se.Code})
		return
	}

	slog.Error("request failed",
		"path", c.FullPath(),
		"request_id", c.GetString("request_id"),
		"code", se.Code,
		"error", err,
	)
	c.JSON(status, models.ErrorResponse{
		Error:   models.MsgInternalServerError,
		Message: se.Message,
		Code:    se.Code,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	default:
		return http.StatusInternalServerError // 500
	}
}
