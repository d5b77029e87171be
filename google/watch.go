package google

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/ChaitanyaVootla/movie-browser-api/dom"
	"github.com/ChaitanyaVootla/movie-browser-api/models"
)

// StepOutcome distinguishes an optional step that ran from one whose anchor
// element was missing or that failed part-way.
type StepOutcome int

const (
	StepAbsent StepOutcome = iota
	StepDone
	StepFailed
)

func (o StepOutcome) String() string {
	switch o {
	case StepDone:
		return "done"
	case StepAbsent:
		return "absent"
	default:
		return "failed"
	}
}

// watchStep is the result of one watch-option source.
type watchStep struct {
	source  string
	outcome StepOutcome
	options []models.WatchOption
	err     error

	// expand records the nested expander click, secondary source only.
	expand StepOutcome
}

func absent(source string) watchStep { return watchStep{source: source, outcome: StepAbsent} }

func failed(source string, err error) watchStep {
	return watchStep{source: source, outcome: StepFailed, err: err}
}

// primaryWatchOptions expands the "where to watch" panel and reads each
// provider. Prices are kept verbatim.
func primaryWatchOptions(doc dom.Document, wait time.Duration) watchStep {
	const source = "primary"

	toggle, ok, err := doc.Find(selPrimaryToggle)
	if err != nil {
		return failed(source, err)
	}
	if !ok {
		return absent(source)
	}
	if err := toggle.Click(wait); err != nil {
		if errors.Is(err, dom.ErrTimeout) {
			return absent(source)
		}
		return failed(source, err)
	}
	container, ok, err := doc.WaitFor(selPrimaryExpanded, wait)
	if err != nil {
		return failed(source, err)
	}
	if !ok {
		return absent(source)
	}

	anchors, err := container.FindAll("a")
	if err != nil {
		return failed(source, err)
	}
	step := watchStep{source: source, outcome: StepDone}
	for _, a := range anchors {
		link, ok, err := a.Href()
		if err != nil {
			return failed(source, err)
		}
		if !ok {
			continue
		}
		name, ok, err := textOf(a, selPrimaryName)
		if err != nil {
			return failed(source, err)
		}
		if !ok {
			continue
		}
		price, _, err := textOf(a, selPrimaryPrice)
		if err != nil {
			return failed(source, err)
		}
		step.options = append(step.options, models.WatchOption{Link: link, Name: name, Price: price})
	}
	return step
}

// secondaryWatchOptions reads the watch-film action block. The nested
// expander is clicked if present and the revealed entries are waited for; a
// failed or timed-out click only loses hidden entries.
func secondaryWatchOptions(doc dom.Document, wait time.Duration) watchStep {
	const source = "secondary"

	container, ok, err := doc.Find(selSecondaryContainer)
	if err != nil {
		return failed(source, err)
	}
	if !ok {
		return absent(source)
	}

	expand := expandNested(doc, container, wait)

	anchors, err := container.FindAll("a")
	if err != nil {
		return withExpand(failed(source, err), expand)
	}
	step := watchStep{source: source, outcome: StepDone, expand: expand}
	for _, a := range anchors {
		link, ok, err := a.Href()
		if err != nil {
			return withExpand(failed(source, err), expand)
		}
		if !ok {
			continue
		}
		name, ok, err := textOf(a, selSecondaryName)
		if err != nil {
			return withExpand(failed(source, err), expand)
		}
		if !ok {
			name = hostname(link)
		}
		price, err := firstText(a, selSecondaryPrice, selSecondaryPriceAlt)
		if err != nil {
			return withExpand(failed(source, err), expand)
		}
		step.options = append(step.options, models.WatchOption{
			Link:  link,
			Name:  name,
			Price: normalizePrice(price),
		})
	}
	return step
}

func withExpand(step watchStep, expand StepOutcome) watchStep {
	step.expand = expand
	return step
}

func expandNested(doc dom.Document, container dom.Node, wait time.Duration) StepOutcome {
	toggle, ok, err := container.Find(selSecondaryToggle)
	if err != nil {
		return StepFailed
	}
	if !ok {
		return StepAbsent
	}
	if err := toggle.Click(wait); err != nil {
		return StepFailed
	}
	// Entries already visible are still read when nothing new appears.
	if _, _, err := doc.WaitFor(selSecondaryExpanded, wait); err != nil {
		return StepFailed
	}
	return StepDone
}

// fallbackWatchOption reads a lone provider link outside any expander.
func fallbackWatchOption(doc dom.Document) watchStep {
	const source = "fallback"

	container, ok, err := doc.Find(selFallbackContainer)
	if err != nil {
		return failed(source, err)
	}
	if !ok {
		return absent(source)
	}
	a, ok, err := container.Find("a")
	if err != nil {
		return failed(source, err)
	}
	if !ok {
		return absent(source)
	}
	link, ok, err := a.Href()
	if err != nil {
		return failed(source, err)
	}
	if !ok {
		return absent(source)
	}
	price, _, err := textOf(container, selFallbackPrice)
	if err != nil {
		return failed(source, err)
	}
	return watchStep{
		source:  source,
		outcome: StepDone,
		options: []models.WatchOption{{
			Link:  link,
			Name:  hostname(link),
			Price: normalizePrice(price),
		}},
	}
}

// firstText returns the text of the first selector that matches.
func firstText(n dom.Node, selectors ...string) (string, error) {
	for _, sel := range selectors {
		text, ok, err := textOf(n, sel)
		if err != nil {
			return "", err
		}
		if ok {
			return text, nil
		}
	}
	return "", nil
}

func hostname(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return link
	}
	return u.Hostname()
}

// normalizePrice maps anything mentioning "free" to "Free" and drops a
// trailing ".00". Other text passes through.
func normalizePrice(price string) string {
	switch {
	case price == "":
		return ""
	case strings.Contains(strings.ToLower(price), "free"):
		return "Free"
	case strings.HasSuffix(price, ".00"):
		return strings.TrimSuffix(price, ".00")
	default:
		return price
	}
}

// SquashWatchOptions keeps one entry per link, in first-seen order. A later
// duplicate replaces the kept entry only when it has a price and the kept
// one does not.
func SquashWatchOptions(options []models.WatchOption) []models.WatchOption {
	out := make([]models.WatchOption, 0, len(options))
	index := make(map[string]int, len(options))
	for _, opt := range options {
		i, seen := index[opt.Link]
		if !seen {
			index[opt.Link] = len(out)
			out = append(out, opt)
			continue
		}
		if out[i].Price == "" && opt.Price != "" {
			out[i] = opt
		}
	}
	return out
}
