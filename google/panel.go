package google

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ChaitanyaVootla/movie-browser-api/dom"
	"github.com/ChaitanyaVootla/movie-browser-api/models"
)

var (
	imdbTitleRe      = regexp.MustCompile(`imdb\.com/title/(tt\d+)`)
	leadingPercentRe = regexp.MustCompile(`^\s*(\d+)\s*%`)
)

// panelRatings is the outcome of scanning the rating badges.
type panelRatings struct {
	ratings []models.Rating
	imdbID  *string
}

// extractRatings reads every badge carrying a value, a source name and a
// link, then appends the engine's own aggregate score when present.
func extractRatings(doc dom.Document, searchURL string) (panelRatings, error) {
	var out panelRatings

	badges, err := doc.FindAll(selRatingBadge)
	if err != nil {
		return out, fmt.Errorf("rating badges: %w", err)
	}
	for _, badge := range badges {
		value, ok, err := textOf(badge, selRatingValue)
		if err != nil {
			return out, err
		}
		if !ok {
			continue
		}
		source, ok, err := textOf(badge, selRatingSource)
		if err != nil {
			return out, err
		}
		if !ok {
			continue
		}
		link, ok, err := badge.Href()
		if err != nil {
			return out, err
		}
		if !ok {
			continue
		}

		out.ratings = append(out.ratings, models.Rating{Name: source, Rating: value, Link: link})
		if m := imdbTitleRe.FindStringSubmatch(link); m != nil && out.imdbID == nil {
			id := m[1]
			out.imdbID = &id
		}
	}

	score, ok, err := textOf(doc, selAggregateScore)
	if err != nil {
		return out, err
	}
	if ok {
		if m := leadingPercentRe.FindStringSubmatch(score); m != nil {
			out.ratings = append(out.ratings, models.Rating{
				Name:   aggregateRatingName,
				Rating: m[1] + "%",
				Link:   searchURL,
			})
		}
	}
	return out, nil
}

// extractDirector returns the text after the first colon of the director
// row, or nil when the row or the colon is missing.
func extractDirector(doc dom.Document) (*string, error) {
	text, ok, err := textOf(doc, selDirector)
	if err != nil || !ok {
		return nil, err
	}
	_, name, found := strings.Cut(text, ":")
	if !found {
		return nil, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	return &name, nil
}

// textOf returns the trimmed text of the first match of selector under n.
// Empty text counts as absent.
func textOf(n dom.Node, selector string) (string, bool, error) {
	el, ok, err := n.Find(selector)
	if err != nil || !ok {
		return "", false, err
	}
	text, err := el.Text()
	if err != nil {
		return "", false, err
	}
	text = collapseSpace(text)
	return text, text != "", nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isBotChallenge(pageText string) bool {
	lower := strings.ToLower(pageText)
	for _, phrase := range botPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
