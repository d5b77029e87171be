package google

// Knowledge-panel selectors. Google rotates class names; keep every selector
// here so a markup change is a one-file fix.
const (
	selRatingBadge    = "a.vIUFYd"
	selRatingValue    = "span.gsrt"
	selRatingSource   = "span.rhsB"
	selAggregateScore = "div.srBp4"
	selDirector       = `div[data-attrid="kc:/film/film:director"]`

	selPrimaryToggle   = `div[data-attrid="kc:/film/film:media_actions_wholepage"] div[role="button"]`
	selPrimaryExpanded = `div[data-attrid="kc:/film/film:media_actions_wholepage"] g-expandable-content[aria-hidden="false"]`
	selPrimaryName     = "div.bclEt"
	selPrimaryPrice    = "div.rsj3fb"

	selSecondaryContainer = `div[data-attrid="action:watch_film"]`
	selSecondaryToggle    = `g-expandable-container div[role="button"]`
	selSecondaryExpanded  = `div[data-attrid="action:watch_film"] g-expandable-content[aria-hidden="false"]`
	selSecondaryName      = "div.i3LlFf"
	selSecondaryPrice     = "span.uiKXTe"
	selSecondaryPriceAlt  = "div.ZYHQ7e"

	selFallbackContainer = "div.fOYFme"
	selFallbackPrice     = "span.uiKXTe, div.ZYHQ7e, div.rsj3fb"
)

// aggregateRatingName labels the search engine's own audience score.
const aggregateRatingName = "Google"

// botPhrases mark a challenge page served instead of results.
var botPhrases = []string{
	"unusual traffic",
	"verify you are a human",
}
