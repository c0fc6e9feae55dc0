package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is an HTML document with event listener bookkeeping.
type Document struct {
	root      *html.Node
	listeners map[*html.Node][]*Listener
}

// NewDocument creates an empty <html><head></head><body></body></html> document.
func NewDocument() *Document {
	doc, err := Parse(strings.NewReader("<!DOCTYPE html><html><head></head><body></body></html>"))
	if err != nil {
		// The literal above always parses.
		panic(err)
	}
	return doc
}

// Parse builds a Document from HTML source.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return &Document{
		root:      root,
		listeners: make(map[*html.Node][]*Listener),
	}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the <body> element.
func (d *Document) Body() *html.Node {
	return d.findAtom(atom.Body)
}

// Head returns the <head> element.
func (d *Document) Head() *html.Node {
	return d.findAtom(atom.Head)
}

func (d *Document) findAtom(a atom.Atom) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	return found
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateText creates a detached text node.
func (d *Document) CreateText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(text string) *html.Node {
	return &html.Node{Type: html.CommentNode, Data: text}
}

// QuerySelector returns the first element in document order matching the
// CSS selector, or nil when nothing matches. The error is non-nil only for
// selectors that do not compile.
func (d *Document) QuerySelector(selector string) (*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: invalid selector %q: %w", selector, err)
	}
	return sel.MatchFirst(d.root), nil
}

// QuerySelectorAll returns every element matching the CSS selector in
// document order.
func (d *Document) QuerySelectorAll(selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: invalid selector %q: %w", selector, err)
	}
	return sel.MatchAll(d.root), nil
}

// Contains reports whether n is attached to this document.
func (d *Document) Contains(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == d.root {
			return true
		}
	}
	return false
}

// Release drops every listener registered on n and its descendants.
// Call it when a subtree is discarded for good.
func (d *Document) Release(n *html.Node) {
	walk(n, func(c *html.Node) bool {
		for _, l := range d.listeners[c] {
			l.removed = true
		}
		delete(d.listeners, c)
		return true
	})
}

// HTML serializes the whole document.
func (d *Document) HTML() string {
	var b strings.Builder
	_ = html.Render(&b, d.root)
	return b.String()
}

// walk visits n and its descendants in document order until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
