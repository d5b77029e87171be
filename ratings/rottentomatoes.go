package ratings

import (
	"log/slog"
	"strings"

	"github.com/ChaitanyaVootla/movie-browser-api/dom"
	"github.com/ChaitanyaVootla/movie-browser-api/models"
	"github.com/tidwall/gjson"
)

const (
	rtBaseURL = "https://www.rottentomatoes.com/"

	criticsLabel  = "Critics Consensus:"
	audienceLabel = "Audience Says:"
)

// Scorecard widget and consensus locations.
const (
	selScorecard         = `media-scorecard`
	selCriticScore       = `rt-text[slot="criticsScore"]`
	selAudienceScore     = `rt-text[slot="audienceScore"]`
	selCriticReviews     = `rt-link[slot="criticsReviews"]`
	selAudienceReviews   = `rt-link[slot="audienceReviews"]`
	selCriticIcon        = `score-icon-critics`
	selAudienceIcon      = `score-icon-audience`
	selCriticConsensus   = `#critics-consensus`
	selCriticConsAlt     = `.critics-consensus`
	selAudienceConsensus = `#audience-consensus`
	selAudienceConsAlt   = `.audience-consensus`

	iconAttrCertified = "certified"
	iconAttrSentiment = "sentiment"
	iconAttrScore     = "value"
)

// RottenTomatoesURL accepts a full page URL or a bare path such as
// "m/the_shawshank_redemption".
func RottenTomatoesURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return rtBaseURL + strings.TrimLeft(raw, "/")
}

// structuredSide is what JSON-LD offers for one side.
type structuredSide struct {
	score     *int
	count     *int64
	consensus *string
}

// scorecardSide is what the scorecard widget offers for one side.
type scorecardSide struct {
	score     *int
	count     *int64
	certified *bool
	sentiment *string
	iconScore *int
}

// ParseRottenTomatoes extracts the critic/audience split from a title page.
// A side with no score, count or consensus is returned as nil.
func ParseRottenTomatoes(html, sourceURL string) *models.RottenTomatoesResult {
	res := &models.RottenTomatoesResult{SourceURL: sourceURL}
	doc, err := dom.ParseHTML(html, sourceURL)
	if err != nil {
		msg := err.Error()
		res.Error = &msg
		return res
	}
	res.Critic, res.Audience = rtFromDocument(doc)
	return res
}

func rtFromDocument(doc dom.Node) (critic, audience *models.CriticAudienceData) {
	ldCritic, ldAudience := rtStructured(doc)
	cardCritic, cardAudience := rtScorecard(doc)

	score, from := firstNonNil(criticScoreCandidates(ldCritic, cardCritic)...)
	if score != nil {
		slog.Debug("critic score resolved", "source", from, "score", *score)
	}
	count, _ := firstNonNil(
		cand(sourceStructured, ldCritic.count),
		cand(sourceScorecard, cardCritic.count),
	)
	consensus, _ := firstNonNil(
		cand(sourceStructured, ldCritic.consensus),
		cand(sourceDOM, consensusText(doc, criticsLabel, selCriticConsensus, selCriticConsAlt)),
	)
	critic = &models.CriticAudienceData{
		Score:       score,
		RatingCount: count,
		Certified:   cardCritic.certified,
		Sentiment:   cardCritic.sentiment,
		Consensus:   consensus,
	}

	aScore, _ := firstNonNil(
		cand(sourceStructured, ldAudience.score),
		cand(sourceScorecard, cardAudience.score),
	)
	aCount, _ := firstNonNil(
		cand(sourceStructured, ldAudience.count),
		cand(sourceScorecard, cardAudience.count),
	)
	audience = &models.CriticAudienceData{
		Score:       aScore,
		RatingCount: aCount,
		Certified:   cardAudience.certified,
		Sentiment:   cardAudience.sentiment,
		Consensus:   consensusText(doc, audienceLabel, selAudienceConsensus, selAudienceConsAlt),
	}

	if critic.Empty() {
		critic = nil
	}
	if audience.Empty() {
		audience = nil
	}
	return critic, audience
}

// criticScoreCandidates lists critic score sources in precedence order. The
// widget score ranks above structured data only when the widget also yielded
// both certified and sentiment; otherwise it is the last resort.
func criticScoreCandidates(ld structuredSide, card scorecardSide) []candidate[int] {
	var trustedCard *int
	if card.certified != nil && card.sentiment != nil {
		trustedCard = card.score
	}
	return []candidate[int]{
		cand(sourceIcon, card.iconScore),
		cand(sourceScorecard, trustedCard),
		cand(sourceStructured, ld.score),
		cand(sourceScorecard, card.score),
	}
}

func rtStructured(doc dom.Node) (critic, audience structuredSide) {
	objects, err := structuredObjects(doc)
	if err != nil {
		return critic, audience
	}
	for _, obj := range objects {
		if !isWork(obj) {
			continue
		}
		if agg := obj.Get("aggregateRating"); agg.IsObject() {
			if critic.score == nil {
				critic.score = jsonPercent(agg.Get("ratingValue"))
			}
			if critic.count == nil {
				critic.count = jsonCount(firstExisting(agg, "ratingCount", "reviewCount"))
			}
		}
		if agg := audienceAggregate(obj); agg.IsObject() {
			if audience.score == nil {
				audience.score = jsonPercent(agg.Get("ratingValue"))
			}
			if audience.count == nil {
				audience.count = jsonCount(firstExisting(agg, "ratingCount", "reviewCount"))
			}
		}
		// A review array holds single critics' reviews, never the consensus.
		if critic.consensus == nil {
			body := jsonString(firstExisting(obj, "review.reviewBody", "reviewBody"))
			if body != nil {
				s := stripLabel(*body, criticsLabel)
				if s != "" {
					critic.consensus = &s
				}
			}
		}
	}
	return critic, audience
}

func audienceAggregate(obj gjson.Result) gjson.Result {
	return firstExisting(obj, "audience.aggregateRating", "audience", "aggregateRating.audience")
}

func rtScorecard(doc dom.Node) (critic, audience scorecardSide) {
	card, ok, err := doc.Find(selScorecard)
	if err != nil || !ok {
		card = doc
	}
	if text, ok := firstSelectorText(card, []string{selCriticScore}); ok {
		critic.score = ParsePercent(text)
	}
	if text, ok := firstSelectorText(card, []string{selAudienceScore}); ok {
		audience.score = ParsePercent(text)
	}
	if text, ok := firstSelectorText(card, []string{selCriticReviews}); ok {
		critic.count = ParseRatingCount(text)
	}
	if text, ok := firstSelectorText(card, []string{selAudienceReviews}); ok {
		audience.count = ParseRatingCount(text)
	}
	readIcon(doc, selCriticIcon, &critic)
	readIcon(doc, selAudienceIcon, &audience)
	return critic, audience
}

func readIcon(doc dom.Node, selector string, side *scorecardSide) {
	if v, ok := firstSelectorAttr(doc, selector, iconAttrCertified); ok {
		side.certified = parseBool(v)
	}
	if v, ok := firstSelectorAttr(doc, selector, iconAttrSentiment); ok {
		s := strings.ToLower(v)
		side.sentiment = &s
	}
	if v, ok := firstSelectorAttr(doc, selector, iconAttrScore); ok {
		side.iconScore = ParsePercent(v)
	}
}

// consensusText reads the first non-empty location and strips its label.
func consensusText(doc dom.Node, label string, selectors ...string) *string {
	text, ok := firstSelectorText(doc, selectors)
	if !ok {
		return nil
	}
	text = stripLabel(text, label)
	if text == "" {
		return nil
	}
	return &text
}
