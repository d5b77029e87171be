// Package dom abstracts document querying over two backends: a live rod page
// and a static HTML document parsed with goquery. Extraction code is written
// once against Node/Document and runs unchanged on either.
package dom

import (
	"errors"
	"time"
)

// ErrTimeout reports that a bounded browser action ran out of time.
var ErrTimeout = errors.New("dom: action timed out")

// Node is a handle on one element (or the document root).
//
// Lookups report presence separately from failure: a missing element returns
// (nil, false, nil), while an error means the backend itself failed.
type Node interface {
	// Find returns the first descendant matching selector.
	Find(selector string) (Node, bool, error)

	// FindAll returns every descendant matching selector, in document order.
	FindAll(selector string) ([]Node, error)

	// Text returns the rendered text of the node.
	Text() (string, error)

	// Attr returns a raw attribute value.
	Attr(name string) (string, bool, error)

	// Href returns the absolute link target of an anchor.
	Href() (string, bool, error)

	// Click activates the node, giving up after timeout. A click that could
	// not complete in time returns an error wrapping ErrTimeout. Static nodes
	// treat this as a no-op.
	Click(timeout time.Duration) error
}

// Document is the root of a page.
type Document interface {
	Node

	// WaitFor polls for selector up to timeout. A timeout is reported as
	// absent, never as an error.
	WaitFor(selector string, timeout time.Duration) (Node, bool, error)

	// BodyText returns the visible text of the whole page.
	BodyText() (string, error)
}
