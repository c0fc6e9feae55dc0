package teleport

import (
	"strings"

	"github.com/vango-dev/teleport/pkg/dom"
	"github.com/vango-dev/teleport/pkg/vdom"
	"golang.org/x/net/html"
)

// Validate checks that children reduce to exactly one element-producing
// child. Fragments are flattened and nil children skipped; text and raw
// children count as nothing. Components count as one element, their
// output is checked again once rendered.
func Validate(children []*vdom.VNode) error {
	_, err := relocatable(children)
	return err
}

func relocatable(children []*vdom.VNode) (*vdom.VNode, error) {
	found := collect(children, nil)
	if len(found) != 1 {
		return nil, &ArityError{Observed: len(found)}
	}
	return found[0], nil
}

func collect(children []*vdom.VNode, out []*vdom.VNode) []*vdom.VNode {
	for _, c := range children {
		if c == nil {
			continue
		}
		switch c.Kind {
		case vdom.KindFragment:
			out = collect(c.Children, out)
		case vdom.KindText, vdom.KindRaw:
		default:
			out = append(out, c)
		}
	}
	return out
}

// ResolveTarget returns the first element of doc matching locator, in
// document order.
func ResolveTarget(doc *dom.Document, locator string) (*html.Node, error) {
	if strings.TrimSpace(locator) == "" {
		return nil, &TargetNotFoundError{Locator: locator}
	}
	n, err := doc.QuerySelector(locator)
	if err != nil {
		return nil, &TargetNotFoundError{Locator: locator, Err: err}
	}
	if n == nil {
		return nil, &TargetNotFoundError{Locator: locator}
	}
	return n, nil
}

// relocatableRoot returns the single element a patched child produced.
func relocatableRoot(nodes []*html.Node) (*html.Node, error) {
	elements := 0
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			elements++
		}
	}
	if len(nodes) != 1 || elements != 1 {
		return nil, &ArityError{Observed: elements}
	}
	return nodes[0], nil
}
