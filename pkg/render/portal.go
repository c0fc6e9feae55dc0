package render

import (
	"github.com/vango-dev/teleport/pkg/dom"
	"github.com/vango-dev/teleport/pkg/vdom"
	"golang.org/x/net/html"
)

// Portal is the capability a teleport implementation offers to the
// renderer. The renderer calls it and nothing else.
type Portal interface {
	// OnWillPatch checks the next marker before any DOM work of the pass.
	// A non-nil error aborts the pass and must leave the portal unchanged.
	OnWillPatch(next *vdom.VNode) error

	// OnDeployed runs once the owner's DOM is in place. It deploys or
	// updates the relocated subtree accepted by the last OnWillPatch.
	OnDeployed() error

	// OnWithdraw takes the relocated subtree out of the DOM while the
	// placeholder stays. A later OnWillPatch/OnDeployed starts over.
	OnWithdraw()

	// OnDestroy tears the portal down for good.
	OnDestroy()
}

// Engine is the part of the Renderer a Portal needs to patch the subtree
// it owns.
type Engine interface {
	Document() *dom.Document
	Patch(prev *Tree, next *vdom.VNode, pass *Pass) (*Tree, error)
	Destroy(t *Tree)
}

// PortalFactory creates the Portal serving one placeholder element.
type PortalFactory func(placeholder *html.Node, engine Engine) Portal
