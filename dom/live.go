package dom

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// LiveDocument is a Document over a rod page.
type LiveDocument struct {
	page *rod.Page
}

// NewLiveDocument wraps page. Bind the page to a context with page.Context
// before wrapping so every query honours cancellation.
func NewLiveDocument(page *rod.Page) *LiveDocument {
	return &LiveDocument{page: page}
}

func (d *LiveDocument) Find(selector string) (Node, bool, error) {
	has, el, err := d.page.Has(selector)
	if err != nil || !has {
		return nil, false, err
	}
	return liveNode{el: el}, true, nil
}

func (d *LiveDocument) FindAll(selector string) ([]Node, error) {
	els, err := d.page.Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrapElements(els), nil
}

func (d *LiveDocument) Text() (string, error) {
	return d.BodyText()
}

func (d *LiveDocument) Attr(string) (string, bool, error) { return "", false, nil }
func (d *LiveDocument) Href() (string, bool, error)       { return "", false, nil }
func (d *LiveDocument) Click(time.Duration) error         { return nil }

func (d *LiveDocument) WaitFor(selector string, timeout time.Duration) (Node, bool, error) {
	tp := d.page.Timeout(timeout)
	el, err := tp.Element(selector)
	if err != nil {
		tp.CancelTimeout()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return liveNode{el: el.CancelTimeout()}, true, nil
}

func (d *LiveDocument) BodyText() (string, error) {
	res, err := d.page.Eval(`() => document.body ? document.body.innerText : ""`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

type liveNode struct {
	el *rod.Element
}

func (n liveNode) Find(selector string) (Node, bool, error) {
	has, el, err := n.el.Has(selector)
	if err != nil || !has {
		return nil, false, err
	}
	return liveNode{el: el}, true, nil
}

func (n liveNode) FindAll(selector string) ([]Node, error) {
	els, err := n.el.Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrapElements(els), nil
}

func (n liveNode) Text() (string, error) {
	return n.el.Text()
}

func (n liveNode) Attr(name string) (string, bool, error) {
	v, err := n.el.Attribute(name)
	if err != nil || v == nil {
		return "", false, err
	}
	return *v, true, nil
}

// Href reads the DOM property, which the browser has already resolved to an
// absolute URL.
func (n liveNode) Href() (string, bool, error) {
	v, err := n.el.Property("href")
	if err != nil {
		return "", false, err
	}
	href := v.Str()
	if href == "" {
		return "", false, nil
	}
	return href, true, nil
}

// Click waits for the element to become interactable for at most timeout.
// A hidden or covered element would otherwise be retried until the page
// context ends.
func (n liveNode) Click(timeout time.Duration) error {
	el := n.el.Timeout(timeout)
	err := el.Click(proto.InputMouseButtonLeft, 1)
	el.CancelTimeout()
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("click: %w", ErrTimeout)
	}
	return err
}

func wrapElements(els rod.Elements) []Node {
	nodes := make([]Node, 0, len(els))
	for _, el := range els {
		nodes = append(nodes, liveNode{el: el})
	}
	return nodes
}
