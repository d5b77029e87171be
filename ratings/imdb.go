package ratings

import (
	"strings"

	"github.com/ChaitanyaVootla/movie-browser-api/dom"
	"github.com/ChaitanyaVootla/movie-browser-api/models"
)

// DOM fallbacks for the title page, current layout first.
var (
	imdbRatingSelectors = []string{
		`[data-testid="hero-rating-bar__aggregate-rating__score"] > span`,
		`span[itemprop="ratingValue"]`,
		`.ratingValue strong span`,
	}
	imdbCountSelectors = []string{
		`[data-testid="hero-rating-bar__aggregate-rating__score"] ~ div:last-child`,
		`span[itemprop="ratingCount"]`,
		`.imdbRating a .small`,
	}
)

// IMDbTitleURL returns the canonical title page for an id like "tt0111161".
func IMDbTitleURL(id string) string {
	return "https://www.imdb.com/title/" + strings.TrimSpace(id) + "/"
}

// ParseIMDb extracts the aggregate rating and vote count from a title page.
// Structured data wins; DOM selectors only fill what it left empty. Error is
// set only when the page itself cannot be parsed.
func ParseIMDb(html, sourceURL string) *models.IMDbResult {
	res := &models.IMDbResult{SourceURL: sourceURL}
	doc, err := dom.ParseHTML(html, sourceURL)
	if err != nil {
		msg := err.Error()
		res.Error = &msg
		return res
	}
	res.Rating, res.RatingCount = imdbFromDocument(doc)
	return res
}

func imdbFromDocument(doc dom.Node) (*float64, *int64) {
	rating, count := imdbStructured(doc)
	if rating == nil {
		if text, ok := firstSelectorText(doc, imdbRatingSelectors); ok {
			rating = ParseDecimal(text)
		}
	}
	if count == nil {
		if text, ok := firstSelectorText(doc, imdbCountSelectors); ok {
			count = ParseRatingCount(text)
		}
	}
	return rating, count
}

func imdbStructured(doc dom.Node) (rating *float64, count *int64) {
	objects, err := structuredObjects(doc)
	if err != nil {
		return nil, nil
	}
	for _, obj := range objects {
		if !isWork(obj) {
			continue
		}
		agg := obj.Get("aggregateRating")
		if !agg.IsObject() {
			continue
		}
		if rating == nil {
			rating = jsonFloat(agg.Get("ratingValue"))
		}
		if count == nil {
			count = jsonCount(firstExisting(agg, "ratingCount", "reviewCount"))
		}
		if rating != nil && count != nil {
			break
		}
	}
	return rating, count
}

// firstSelectorText returns the trimmed text of the first selector that
// matches a node with non-empty text.
func firstSelectorText(doc dom.Node, selectors []string) (string, bool) {
	for _, sel := range selectors {
		n, ok, err := doc.Find(sel)
		if err != nil || !ok {
			continue
		}
		text, err := n.Text()
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, true
		}
	}
	return "", false
}

func firstSelectorAttr(doc dom.Node, selector, attr string) (string, bool) {
	n, ok, err := doc.Find(selector)
	if err != nil || !ok {
		return "", false
	}
	v, ok, err := n.Attr(attr)
	if err != nil || !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
