package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// AppendChild makes child the last child of parent. A child that is
// already attached somewhere, including under parent itself, is moved.
func AppendChild(parent, child *html.Node) {
	Remove(child)
	parent.AppendChild(child)
}

// InsertBefore inserts child before ref under parent. A nil ref appends.
func InsertBefore(parent, child, ref *html.Node) {
	if ref == child {
		return
	}
	Remove(child)
	parent.InsertBefore(child, ref)
}

// Remove detaches n from its parent. Detached nodes are left as is.
func Remove(n *html.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// ReplaceWith puts repl at old's position and detaches old.
func ReplaceWith(old, repl *html.Node) {
	if old == repl || old.Parent == nil {
		return
	}
	parent, next := old.Parent, old.NextSibling
	Remove(old)
	InsertBefore(parent, repl, next)
}

// Children returns the child nodes of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// ChildAt returns the i-th child of n, or nil.
func ChildAt(n *html.Node, i int) *html.Node {
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

// GetAttr returns the value of attribute key.
func GetAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets attribute key, keeping its position if present.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes attribute key.
func RemoveAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// SetText replaces the data of a text node, or the children of an element
// with a single text node.
func SetText(n *html.Node, text string) {
	if n.Type == html.TextNode {
		n.Data = text
		return
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// TextContent concatenates the text of n and its descendants.
func TextContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// OuterHTML serializes n including itself.
func OuterHTML(n *html.Node) string {
	var b strings.Builder
	_ = html.Render(&b, n)
	return b.String()
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// Within reports whether n is ancestor or one of its descendants.
func Within(n, ancestor *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}
