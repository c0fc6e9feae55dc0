package teleport

import (
	"errors"

	"github.com/vango-dev/teleport/pkg/dom"
	"github.com/vango-dev/teleport/pkg/render"
	"github.com/vango-dev/teleport/pkg/vdom"
	"golang.org/x/net/html"
)

// State is the deployment state of a teleport.
type State uint8

const (
	StateUndeployed State = iota
	StateDeployed
	StateUpdating
	StateWithdrawn
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUndeployed:
		return "undeployed"
	case StateDeployed:
		return "deployed"
	case StateUpdating:
		return "updating"
	case StateWithdrawn:
		return "withdrawn"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

var errReentrant = errors.New("teleport: deploy while a pass is in progress")

// Sequencer owns the relocated subtree of one teleport and orders its DOM
// work against its hook calls.
type Sequencer struct {
	engine render.Engine

	state   State
	scratch *html.Node
	tree    *render.Tree
	root    *html.Node
}

// NewSequencer creates a Sequencer patching through engine.
func NewSequencer(engine render.Engine) *Sequencer {
	return &Sequencer{engine: engine}
}

// State returns the current state.
func (s *Sequencer) State() State {
	return s.state
}

// Root returns the relocated root, nil unless deployed.
func (s *Sequencer) Root() *html.Node {
	return s.root
}

// Scratch returns the private element the current root was first
// patched into.
func (s *Sequencer) Scratch() *html.Node {
	return s.scratch
}

// Deploy renders child under target. From Undeployed or Withdrawn it is a
// first mount; from Deployed an update. The root is bound to redirector
// before any hook runs.
func (s *Sequencer) Deploy(child *vdom.VNode, target *html.Node, redirector *Redirector) error {
	switch s.state {
	case StateDestroyed:
		return ErrDestroyed
	case StateUpdating:
		return errReentrant
	case StateDeployed:
		return s.update(child, target, redirector)
	default:
		return s.mount(child, target, redirector)
	}
}

func (s *Sequencer) mount(child *vdom.VNode, target *html.Node, redirector *Redirector) error {
	scratch := s.engine.Document().CreateElement("div")
	pass := render.NewPass()
	tree, err := s.engine.Patch(nil, child, pass)
	if err != nil {
		return err
	}
	nodes := tree.Nodes()
	for _, n := range nodes {
		dom.AppendChild(scratch, n)
	}
	root, err := relocatableRoot(nodes)
	if err != nil {
		s.engine.Destroy(tree)
		return err
	}

	dom.AppendChild(target, root)
	s.scratch, s.tree, s.root = scratch, tree, root
	s.state = StateDeployed
	redirector.Bind(root)
	return pass.Flush()
}

func (s *Sequencer) update(child *vdom.VNode, target *html.Node, redirector *Redirector) error {
	s.state = StateUpdating
	pass := render.NewPass()
	tree, err := s.engine.Patch(s.tree, child, pass)
	if err != nil {
		s.state = StateDeployed
		return err
	}
	s.tree = tree
	root, err := relocatableRoot(tree.Nodes())
	if err != nil {
		s.Withdraw(redirector)
		return err
	}

	if root.Parent != target || root.NextSibling != nil {
		dom.AppendChild(target, root)
	}
	s.root = root
	s.state = StateDeployed
	redirector.Bind(root)
	return pass.Flush()
}

// Withdraw detaches the root, unbinds it and destroys the relocated tree.
// It reports whether anything was deployed.
func (s *Sequencer) Withdraw(redirector *Redirector) bool {
	if s.state != StateDeployed && s.state != StateUpdating {
		return false
	}
	if s.root != nil {
		dom.Remove(s.root)
	}
	redirector.Unbind()
	s.engine.Destroy(s.tree)
	s.scratch, s.tree, s.root = nil, nil, nil
	s.state = StateWithdrawn
	return true
}

// Destroy withdraws and makes the state terminal.
func (s *Sequencer) Destroy(redirector *Redirector) {
	s.Withdraw(redirector)
	s.state = StateDestroyed
}
