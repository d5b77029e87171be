package dom

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// selectorCache holds compiled selectors; extraction reuses a small fixed set.
var selectorCache sync.Map // string -> cascadia.Selector

func compile(selector string) (cascadia.Selector, error) {
	if v, ok := selectorCache.Load(selector); ok {
		return v.(cascadia.Selector), nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: compile selector %q: %w", selector, err)
	}
	selectorCache.Store(selector, sel)
	return sel, nil
}

// StaticDocument is a Document over fetched HTML.
type StaticDocument struct {
	staticNode
	doc *goquery.Document
}

// ParseHTML parses markup into a StaticDocument. baseURL, when non-empty,
// resolves relative hrefs.
func ParseHTML(markup, baseURL string) (*StaticDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("dom: parse html: %w", err)
	}
	var base *url.URL
	if baseURL != "" {
		if base, err = url.Parse(baseURL); err != nil {
			return nil, fmt.Errorf("dom: parse base url: %w", err)
		}
	}
	return &StaticDocument{
		staticNode: staticNode{sel: doc.Selection, base: base},
		doc:        doc,
	}, nil
}

// Selection exposes the underlying goquery selection.
func (d *StaticDocument) Selection() *goquery.Selection {
	return d.doc.Selection
}

// WaitFor returns immediately: static markup never changes.
func (d *StaticDocument) WaitFor(selector string, _ time.Duration) (Node, bool, error) {
	return d.Find(selector)
}

func (d *StaticDocument) BodyText() (string, error) {
	return d.doc.Find("body").Text(), nil
}

type staticNode struct {
	sel  *goquery.Selection
	base *url.URL
}

func (n staticNode) Find(selector string) (Node, bool, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, false, err
	}
	found := n.sel.FindMatcher(m).First()
	if found.Length() == 0 {
		return nil, false, nil
	}
	return staticNode{sel: found, base: n.base}, true, nil
}

func (n staticNode) FindAll(selector string) ([]Node, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, err
	}
	found := n.sel.FindMatcher(m)
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, staticNode{sel: s, base: n.base})
	})
	return nodes, nil
}

func (n staticNode) Text() (string, error) {
	return n.sel.Text(), nil
}

func (n staticNode) Attr(name string) (string, bool, error) {
	v, ok := n.sel.Attr(name)
	return v, ok, nil
}

func (n staticNode) Href() (string, bool, error) {
	raw, ok := n.sel.Attr("href")
	if !ok || strings.TrimSpace(raw) == "" {
		return "", false, nil
	}
	raw = strings.TrimSpace(raw)
	if n.base == nil {
		return raw, true, nil
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw, true, nil
	}
	return n.base.ResolveReference(ref).String(), true, nil
}

func (n staticNode) Click(time.Duration) error { return nil }
