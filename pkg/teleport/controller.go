package teleport

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/vango-dev/teleport/pkg/dom"
	"github.com/vango-dev/teleport/pkg/render"
	"github.com/vango-dev/teleport/pkg/vdom"
	"golang.org/x/net/html"
)

// Controller serves one teleport placeholder. It implements render.Portal.
//
// Teleports sharing a target are not ordered against each other beyond
// "the root deployed last ends up last".
type Controller struct {
	id          string
	placeholder *html.Node
	doc         *dom.Document
	logger      *slog.Logger
	observer    Observer

	seq        *Sequencer
	redirector *Redirector

	locator string
	target  *html.Node

	// accepted by the last OnWillPatch, consumed by OnDeployed
	next       *vdom.VNode
	nextTarget *html.Node
	nextLoc    string
}

var _ render.Portal = (*Controller)(nil)

// New creates the Controller for placeholder.
func New(placeholder *html.Node, engine render.Engine, opts ...Option) *Controller {
	o := newOptions(opts)
	c := &Controller{
		id:          uuid.NewString(),
		placeholder: placeholder,
		doc:         engine.Document(),
		observer:    o.observer,
		seq:         NewSequencer(engine),
	}
	c.logger = o.logger.With("teleport", c.id)
	c.redirector = NewRedirector(c.doc, placeholder, o.events)
	c.redirector.OnRedirect(func(eventType string) {
		c.observer.Redirected(c.id, eventType)
	})
	return c
}

// Factory returns a render.PortalFactory creating Controllers with opts.
func Factory(opts ...Option) render.PortalFactory {
	return func(placeholder *html.Node, engine render.Engine) render.Portal {
		return New(placeholder, engine, opts...)
	}
}

// ID returns the controller's unique id.
func (c *Controller) ID() string { return c.id }

// Placeholder returns the element left at the teleport's position.
func (c *Controller) Placeholder() *html.Node { return c.placeholder }

// State returns the deployment state.
func (c *Controller) State() State { return c.seq.State() }

// Root returns the relocated root, nil unless deployed.
func (c *Controller) Root() *html.Node { return c.seq.Root() }

// Target returns the container the root lives in, nil unless deployed.
func (c *Controller) Target() *html.Node {
	if c.seq.Root() == nil {
		return nil
	}
	return c.target
}

// OnWillPatch validates next and resolves its target. It does not touch
// the DOM; on error the controller is left as it was.
func (c *Controller) OnWillPatch(next *vdom.VNode) error {
	if c.seq.State() == StateDestroyed {
		return ErrDestroyed
	}
	child, err := relocatable(next.Children)
	if err != nil {
		c.observer.Rejected(c.id, err)
		return err
	}
	locator := next.TeleportTarget()
	target, err := ResolveTarget(c.doc, locator)
	if err == nil && c.owns(target) {
		err = &TargetNotFoundError{Locator: locator, Err: ErrTargetInsideTeleport}
	}
	if err != nil {
		c.observer.Rejected(c.id, err)
		return err
	}
	c.next, c.nextTarget, c.nextLoc = child, target, locator
	return nil
}

// owns reports whether n is the placeholder, lies inside it, or lies
// inside the relocated root.
func (c *Controller) owns(n *html.Node) bool {
	if dom.Within(n, c.placeholder) {
		return true
	}
	root := c.seq.Root()
	return root != nil && dom.Within(n, root)
}

// OnDeployed deploys or updates the child accepted by OnWillPatch.
// Errors from patching the child are returned unchanged.
func (c *Controller) OnDeployed() error {
	if c.seq.State() == StateDestroyed {
		return ErrDestroyed
	}
	if c.next == nil {
		return nil
	}
	child, target, locator := c.next, c.nextTarget, c.nextLoc
	c.next, c.nextTarget, c.nextLoc = nil, nil, ""

	mode := ModeMount
	if c.seq.State() == StateDeployed {
		mode = ModeUpdate
	}
	moved := mode == ModeUpdate && target != c.target

	done := c.observer.DeployStarted(DeployInfo{ID: c.id, Locator: locator, Mode: mode})
	err := c.seq.Deploy(child, target, c.redirector)
	done(err)
	if err != nil {
		return err
	}

	c.target, c.locator = target, locator
	if moved {
		c.logger.Debug("teleport moved", "target", locator)
	} else {
		c.logger.Debug("teleport deployed", "target", locator, "mode", string(mode))
	}
	return nil
}

// OnWithdraw takes the relocated subtree out of the document. The next
// deploy is a fresh first mount.
func (c *Controller) OnWithdraw() {
	c.next, c.nextTarget, c.nextLoc = nil, nil, ""
	if c.seq.Withdraw(c.redirector) {
		c.observer.Withdrawn(c.id)
		c.logger.Debug("teleport withdrawn", "target", c.locator)
	}
	c.target, c.locator = nil, ""
}

// OnDestroy withdraws and retires the controller. Later calls return
// ErrDestroyed.
func (c *Controller) OnDestroy() {
	if c.seq.State() == StateDestroyed {
		return
	}
	c.OnWithdraw()
	c.seq.Destroy(c.redirector)
	c.logger.Debug("teleport destroyed")
}
