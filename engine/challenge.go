package engine

import (
	"fmt"
	"net/http"
	"strings"
)

// challengeStatuses are answered by bot walls instead of the page.
var challengeStatuses = map[int]bool{
	http.StatusAccepted:        true,
	http.StatusForbidden:       true,
	http.StatusTooManyRequests: true,
}

// challengeMarkers are lowercase fragments of known interstitials.
var challengeMarkers = []string{
	"captcha-delivery.com",
	"/cdn-cgi/challenge-platform/",
	"cf-chl-",
	"px-captcha",
	"verify you are a human",
	"are you a robot",
	"unusual traffic from your computer network",
}

// challengeTitles are exact <title> texts of interstitials.
var challengeTitles = map[string]bool{
	"just a moment...":                 true,
	"attention required! | cloudflare": true,
	"access denied":                    true,
}

// detectChallenge returns an error wrapping ErrChallenge when the response
// looks like a bot wall.
func detectChallenge(status int, title, body string) error {
	if challengeStatuses[status] {
		return fmt.Errorf("%w: HTTP %d", ErrChallenge, status)
	}
	if challengeTitles[strings.ToLower(strings.TrimSpace(title))] {
		return fmt.Errorf("%w: title %q", ErrChallenge, title)
	}
	lower := strings.ToLower(body)
	for _, m := range challengeMarkers {
		if strings.Contains(lower, m) {
			return fmt.Errorf("%w: marker %q", ErrChallenge, m)
		}
	}
	return nil
}
