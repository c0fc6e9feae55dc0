package render

import (
	"errors"

	"github.com/vango-dev/teleport/pkg/dom"
	"github.com/vango-dev/teleport/pkg/vdom"
	"golang.org/x/net/html"
)

// DefaultPlaceholderTag is the tag of the element a teleport leaves behind
// in its owner's tree.
const DefaultPlaceholderTag = "portal"

// ErrNoPortals is returned when a teleport is rendered by a Renderer
// configured without a PortalFactory.
var ErrNoPortals = errors.New("render: teleport rendered without a portal factory")

// Config configures a Renderer.
type Config struct {
	// Document is the document nodes are created in. A fresh empty document
	// is used when nil.
	Document *dom.Document

	// PlaceholderTag overrides DefaultPlaceholderTag.
	PlaceholderTag string

	// Portals creates the Portal of every teleport placeholder.
	Portals PortalFactory
}

// Renderer is the diff engine. See the package documentation.
type Renderer struct {
	doc            *dom.Document
	placeholderTag string
	portals        PortalFactory
}

// NewRenderer creates a Renderer.
func NewRenderer(cfg Config) *Renderer {
	r := &Renderer{
		doc:            cfg.Document,
		placeholderTag: cfg.PlaceholderTag,
		portals:        cfg.Portals,
	}
	if r.doc == nil {
		r.doc = dom.NewDocument()
	}
	if r.placeholderTag == "" {
		r.placeholderTag = DefaultPlaceholderTag
	}
	return r
}

// Document returns the document the renderer works on.
func (r *Renderer) Document() *dom.Document {
	return r.doc
}

// PlaceholderTag returns the tag used for teleport placeholders.
func (r *Renderer) PlaceholderTag() string {
	return r.placeholderTag
}

// Patch reconciles prev against next and returns the new tree. A nil prev
// creates; a nil next destroys. When prev's nodes are attached, the
// resulting nodes take their place under the same parent. Freshly created
// nodes are left detached for the caller to insert.
//
// Every teleport in next is validated before the first DOM write, so a
// rejected teleport leaves the document untouched. Hooks are recorded in
// pass; nothing runs until pass.Flush.
func (r *Renderer) Patch(prev *Tree, next *vdom.VNode, pass *Pass) (*Tree, error) {
	defer pass.settle()
	if err := r.check(prev, next, pass); err != nil {
		return nil, err
	}

	var parent, start, after *html.Node
	if nodes := prev.Nodes(); len(nodes) > 0 && nodes[0].Parent != nil {
		parent = nodes[0].Parent
		start = nodes[0]
		after = nodes[len(nodes)-1].NextSibling
	}

	t, err := r.patch(prev, next, pass)
	if err != nil {
		return nil, err
	}

	if parent != nil {
		cur := start
		if cur.Parent != parent {
			cur = after
		}
		if cur != nil && cur.Parent != parent {
			cur = nil
		}
		syncNodes(parent, cur, t.Nodes())
	}
	return t, nil
}

// Destroy tears a tree down: its nodes leave the DOM, listeners are
// released, portals are destroyed and Destroyed hooks run.
func (r *Renderer) Destroy(t *Tree) {
	r.destroy(t, true)
}

// Mount renders v and appends the result to container. The tree is built
// before anything is attached, so on error the container is unchanged.
func (r *Renderer) Mount(container *html.Node, v *vdom.VNode) (*Root, error) {
	pass := NewPass()
	t, err := r.Patch(nil, v, pass)
	if err != nil {
		return nil, err
	}
	for _, n := range t.Nodes() {
		dom.AppendChild(container, n)
	}

	root := &Root{r: r, container: container, tree: t}
	if err := pass.Flush(); err != nil {
		root.Unmount()
		return nil, err
	}
	return root, nil
}

// Root is a tree mounted into a container element.
type Root struct {
	r         *Renderer
	container *html.Node
	tree      *Tree
}

// Container returns the element the root was mounted into.
func (root *Root) Container() *html.Node {
	return root.container
}

// Tree returns the current mounted tree.
func (root *Root) Tree() *Tree {
	return root.tree
}

// Nodes returns the current top-level DOM nodes of the root.
func (root *Root) Nodes() []*html.Node {
	return root.tree.Nodes()
}

// Update re-renders the root with v. When a teleport rejects its next
// marker the DOM is unchanged and the root keeps its previous tree. Errors
// from deploying portals are returned after the new tree is committed and
// every hook of the pass has run.
func (root *Root) Update(v *vdom.VNode) error {
	pass := NewPass()
	t, err := root.r.Patch(root.tree, v, pass)
	if err != nil {
		return err
	}
	root.tree = t
	for _, n := range t.Nodes() {
		if n.Parent == nil {
			dom.AppendChild(root.container, n)
		}
	}
	return pass.Flush()
}

// Unmount destroys the tree. The root must not be used afterwards.
func (root *Root) Unmount() {
	root.r.Destroy(root.tree)
	root.tree = nil
}
