package render

import (
	"errors"

	"github.com/vango-dev/teleport/pkg/vdom"
)

type stepKind uint8

const (
	stepMounted stepKind = iota
	stepPatched
	stepDeploy
)

type step struct {
	kind   stepKind
	comp   vdom.Component
	portal Portal
}

// Pass collects the hook calls of one reconciliation so they can run after
// the DOM work is complete.
type Pass struct {
	steps []step
	plan  *plan
}

// plan carries what the check phase of a Patch learned to its apply phase:
// component output rendered once, placeholders created and accepted, and
// existing teleports whose next marker was accepted.
type plan struct {
	renders  map[*vdom.VNode][]*vdom.VNode
	opened   map[*vdom.VNode][]*Tree
	accepted map[*Tree]bool
}

// NewPass creates an empty pass.
func NewPass() *Pass {
	return &Pass{}
}

func (p *Pass) mounted(c vdom.Component) {
	if _, ok := c.(vdom.Mounter); ok {
		p.steps = append(p.steps, step{kind: stepMounted, comp: c})
	}
}

func (p *Pass) patched(c vdom.Component) {
	if _, ok := c.(vdom.Patcher); ok {
		p.steps = append(p.steps, step{kind: stepPatched, comp: c})
	}
}

func (p *Pass) deploy(portal Portal) {
	p.steps = append(p.steps, step{kind: stepDeploy, portal: portal})
}

func (p *Pass) planned() *plan {
	if p.plan == nil {
		p.plan = &plan{
			renders:  make(map[*vdom.VNode][]*vdom.VNode),
			opened:   make(map[*vdom.VNode][]*Tree),
			accepted: make(map[*Tree]bool),
		}
	}
	return p.plan
}

// render renders the component of v and keeps the output for rendered.
func (p *Pass) render(v *vdom.VNode) *vdom.VNode {
	out := v.Comp.Render()
	pl := p.planned()
	pl.renders[v] = append(pl.renders[v], out)
	return out
}

// rendered returns the output render kept for v, rendering afresh when
// the check phase did not see v.
func (p *Pass) rendered(v *vdom.VNode) *vdom.VNode {
	if p.plan != nil {
		if queue := p.plan.renders[v]; len(queue) > 0 {
			p.plan.renders[v] = queue[1:]
			return queue[0]
		}
	}
	return v.Comp.Render()
}

func (p *Pass) open(v *vdom.VNode, t *Tree) {
	pl := p.planned()
	pl.opened[v] = append(pl.opened[v], t)
}

// takeOpened returns a placeholder tree opened for v by the check phase.
func (p *Pass) takeOpened(v *vdom.VNode) *Tree {
	if p.plan == nil {
		return nil
	}
	queue := p.plan.opened[v]
	if len(queue) == 0 {
		return nil
	}
	p.plan.opened[v] = queue[1:]
	return queue[0]
}

func (p *Pass) accept(t *Tree) {
	p.planned().accepted[t] = true
}

func (p *Pass) isAccepted(t *Tree) bool {
	return p.plan != nil && p.plan.accepted[t]
}

// settle drops the plan. Placeholders opened but never placed have their
// portals destroyed.
func (p *Pass) settle() {
	if p.plan == nil {
		return
	}
	for _, queue := range p.plan.opened {
		for _, t := range queue {
			t.portal.OnDestroy()
		}
	}
	p.plan = nil
}

// Len returns the number of pending steps.
func (p *Pass) Len() int {
	return len(p.steps)
}

// Flush runs the pending steps in the order they were recorded and empties
// the pass. A failing portal does not stop later steps; the portal errors
// are returned together.
func (p *Pass) Flush() error {
	steps := p.steps
	p.steps = nil
	var errs []error
	for _, s := range steps {
		switch s.kind {
		case stepMounted:
			s.comp.(vdom.Mounter).Mounted()
		case stepPatched:
			s.comp.(vdom.Patcher).Patched()
		case stepDeploy:
			if err := s.portal.OnDeployed(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}
