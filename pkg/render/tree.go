package render

import (
	"github.com/vango-dev/teleport/pkg/dom"
	"github.com/vango-dev/teleport/pkg/vdom"
	"golang.org/x/net/html"
)

// Tree is the mounted counterpart of a VNode: the DOM it produced and the
// state needed to patch it on the next render.
type Tree struct {
	vnode *vdom.VNode

	node     *html.Node   // element, text or teleport placeholder
	raw      []*html.Node // KindRaw
	children []*Tree      // element and fragment children

	comp     vdom.Component // KindComponent
	rendered *Tree          // component output

	portal Portal // KindTeleport

	handlers  map[string]any
	listeners map[string]*dom.Listener
}

// VNode returns the node this tree was last patched with.
func (t *Tree) VNode() *vdom.VNode {
	if t == nil {
		return nil
	}
	return t.vnode
}

// Portal returns the portal serving a teleport tree.
func (t *Tree) Portal() Portal {
	if t == nil {
		return nil
	}
	return t.portal
}

// Node returns the root DOM node when the tree produced exactly one
// top-level node, nil otherwise.
func (t *Tree) Node() *html.Node {
	nodes := t.Nodes()
	if len(nodes) != 1 {
		return nil
	}
	return nodes[0]
}

// Nodes returns the top-level DOM nodes of the tree in order. Fragments
// and components contribute the nodes of their children.
func (t *Tree) Nodes() []*html.Node {
	return t.appendNodes(nil)
}

func (t *Tree) appendNodes(out []*html.Node) []*html.Node {
	if t == nil {
		return out
	}
	switch t.vnode.Kind {
	case vdom.KindFragment:
		for _, c := range t.children {
			out = c.appendNodes(out)
		}
	case vdom.KindComponent:
		out = t.rendered.appendNodes(out)
	case vdom.KindRaw:
		out = append(out, t.raw...)
	default:
		out = append(out, t.node)
	}
	return out
}

func childNodes(children []*Tree) []*html.Node {
	var out []*html.Node
	for _, c := range children {
		out = c.appendNodes(out)
	}
	return out
}

// syncNodes makes desired appear in order under parent, starting at cur.
// Nodes already in place are left alone. Foreign nodes found in between
// end up after the desired ones.
func syncNodes(parent, cur *html.Node, desired []*html.Node) {
	for _, n := range desired {
		if n == cur {
			cur = cur.NextSibling
			continue
		}
		dom.InsertBefore(parent, n, cur)
	}
}
