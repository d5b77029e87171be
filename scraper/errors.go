package scraper

import (
	"context"
	"errors"

	"github.com/ChaitanyaVootla/movie-browser-api/models"
	"github.com/go-rod/rod"
)

// categorizeError turns a raw browser error into a ScrapeError. Errors that
// are already typed keep their code so a launch failure deep in the session
// is not reported as a navigation problem.
func categorizeError(err error, msg string) *models.ScrapeError {
	var se *models.ScrapeError
	var navErr *rod.NavigationError
	switch {
	case errors.As(err, &se):
		return se
	case errors.Is(err, ErrBrowserNotFound):
		return models.NewScrapeError(models.ErrCodeBrowserMissing, msg, err)
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "request canceled", err)
	case errors.As(err, &navErr):
		return models.NewScrapeError(models.ErrCodeNavigation, msg+": "+navErr.Reason, err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}
