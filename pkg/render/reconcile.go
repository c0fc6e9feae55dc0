package render

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/vango-dev/teleport/pkg/dom"
	"github.com/vango-dev/teleport/pkg/vdom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func (r *Renderer) patch(prev *Tree, next *vdom.VNode, pass *Pass) (*Tree, error) {
	if next == nil {
		r.destroy(prev, true)
		return nil, nil
	}
	if prev == nil {
		return r.create(next, pass)
	}
	if !sameType(prev.vnode, next) {
		t, err := r.create(next, pass)
		if err != nil {
			return nil, err
		}
		r.destroy(prev, true)
		return t, nil
	}
	if err := r.update(prev, next, pass); err != nil {
		return nil, err
	}
	return prev, nil
}

// sameType reports whether prev can be patched into next rather than
// replaced.
func sameType(prev, next *vdom.VNode) bool {
	if prev.Kind != next.Kind || getKey(prev) != getKey(next) {
		return false
	}
	switch next.Kind {
	case vdom.KindElement:
		return strings.EqualFold(prev.Tag, next.Tag)
	case vdom.KindComponent:
		return reflect.TypeOf(prev.Comp) == reflect.TypeOf(next.Comp)
	}
	return true
}

func (r *Renderer) create(v *vdom.VNode, pass *Pass) (*Tree, error) {
	if v == nil {
		return nil, nil
	}
	t := &Tree{vnode: v}

	switch v.Kind {
	case vdom.KindText:
		t.node = r.doc.CreateText(v.Text)

	case vdom.KindRaw:
		nodes, err := html.ParseFragment(strings.NewReader(v.Text), &html.Node{
			Type:     html.ElementNode,
			Data:     "div",
			DataAtom: atom.Div,
		})
		if err != nil {
			return nil, fmt.Errorf("render: raw html: %w", err)
		}
		t.raw = nodes

	case vdom.KindElement:
		t.node = r.doc.CreateElement(v.Tag)
		r.setProps(t, nil, v.Props, false)
		children, err := r.createChildren(v.Children, pass)
		if err != nil {
			r.releaseHandlers(t)
			return nil, err
		}
		t.children = children
		for _, n := range childNodes(children) {
			dom.AppendChild(t.node, n)
		}

	case vdom.KindFragment:
		children, err := r.createChildren(v.Children, pass)
		if err != nil {
			return nil, err
		}
		t.children = children

	case vdom.KindComponent:
		if v.Comp == nil {
			return t, nil
		}
		t.comp = v.Comp
		pass.mounted(v.Comp)
		rendered, err := r.create(pass.rendered(v), pass)
		if err != nil {
			return nil, err
		}
		t.rendered = rendered

	case vdom.KindTeleport:
		if err := r.createTeleport(t, v, pass); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("render: unknown node kind %s", v.Kind)
	}
	return t, nil
}

func (r *Renderer) createChildren(children []*vdom.VNode, pass *Pass) ([]*Tree, error) {
	out := make([]*Tree, 0, len(children))
	for _, c := range children {
		t, err := r.create(c, pass)
		if err != nil {
			for _, done := range out {
				r.destroy(done, true)
			}
			return nil, err
		}
		if t != nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *Renderer) createTeleport(t *Tree, v *vdom.VNode, pass *Pass) error {
	if opened := pass.takeOpened(v); opened != nil {
		t.node, t.portal = opened.node, opened.portal
	} else if err := r.openTeleport(t, v); err != nil {
		return err
	}
	if v.TeleportActive() {
		pass.deploy(t.portal)
	}
	r.setProps(t, nil, v.Props, true)
	return nil
}

// openTeleport creates the placeholder and its portal, and has an active
// portal accept v. A rejected portal is destroyed.
func (r *Renderer) openTeleport(t *Tree, v *vdom.VNode) error {
	if r.portals == nil {
		return ErrNoPortals
	}
	t.node = r.doc.CreateElement(r.placeholderTag)
	t.portal = r.portals(t.node, r)
	if v.TeleportActive() {
		if err := t.portal.OnWillPatch(v); err != nil {
			t.portal.OnDestroy()
			return err
		}
	}
	return nil
}

func (r *Renderer) update(t *Tree, next *vdom.VNode, pass *Pass) error {
	prev := t.vnode

	switch next.Kind {
	case vdom.KindText:
		if prev.Text != next.Text {
			t.node.Data = next.Text
		}

	case vdom.KindRaw:
		if prev.Text != next.Text {
			fresh, err := r.create(next, pass)
			if err != nil {
				return err
			}
			for _, n := range t.raw {
				dom.Remove(n)
			}
			t.raw = fresh.raw
		}

	case vdom.KindElement:
		r.setProps(t, prev.Props, next.Props, false)
		children, err := r.patchChildren(t.children, next.Children, pass)
		if err != nil {
			return err
		}
		t.children = children
		syncNodes(t.node, t.node.FirstChild, childNodes(children))

	case vdom.KindFragment:
		children, err := r.patchChildren(t.children, next.Children, pass)
		if err != nil {
			return err
		}
		t.children = children

	case vdom.KindComponent:
		t.comp = next.Comp
		if next.Comp != nil {
			rendered, err := r.patch(t.rendered, pass.rendered(next), pass)
			if err != nil {
				return err
			}
			t.rendered = rendered
			pass.patched(next.Comp)
		}

	case vdom.KindTeleport:
		switch {
		case next.TeleportActive():
			if !pass.isAccepted(t) {
				if err := t.portal.OnWillPatch(next); err != nil {
					return err
				}
			}
			pass.deploy(t.portal)
		case prev.TeleportActive():
			t.portal.OnWithdraw()
		}
		r.setProps(t, prev.Props, next.Props, true)
	}

	t.vnode = next
	return nil
}

// patchChildren reconciles a child list. Keyed lists match children by key
// and let the caller move nodes into place; unkeyed lists match by index.
func (r *Renderer) patchChildren(prev []*Tree, next []*vdom.VNode, pass *Pass) ([]*Tree, error) {
	olds, unmatched := matchChildren(prev, next)
	out := make([]*Tree, 0, len(next))
	for i, child := range next {
		t, err := r.patch(olds[i], child, pass)
		if err != nil {
			return nil, err
		}
		if t != nil {
			out = append(out, t)
		}
	}
	for _, t := range unmatched {
		r.destroy(t, true)
	}
	return out, nil
}

// matchChildren pairs every next child with the previous tree it patches,
// nil when it is created. The previous trees left over are returned as
// unmatched.
func matchChildren(prev []*Tree, next []*vdom.VNode) (olds, unmatched []*Tree) {
	olds = make([]*Tree, len(next))
	if !hasKeys(next) {
		for i := range next {
			if i < len(prev) {
				olds[i] = prev[i]
			}
		}
		if len(prev) > len(next) {
			unmatched = prev[len(next):]
		}
		return olds, unmatched
	}

	prevKeyMap := make(map[string]int, len(prev))
	for i, child := range prev {
		if key := getKey(child.vnode); key != "" {
			prevKeyMap[key] = i
		}
	}

	matched := make(map[int]bool)
	for j, child := range next {
		// Unkeyed children of a keyed list are always created.
		if key := getKey(child); key != "" {
			if i, ok := prevKeyMap[key]; ok && !matched[i] {
				matched[i] = true
				olds[j] = prev[i]
			}
		}
	}
	for i, child := range prev {
		if !matched[i] {
			unmatched = append(unmatched, child)
		}
	}
	return olds, unmatched
}

func getKey(node *vdom.VNode) string {
	if node == nil {
		return ""
	}
	return node.Key
}

func hasKeys(children []*vdom.VNode) bool {
	for _, child := range children {
		if getKey(child) != "" {
			return true
		}
	}
	return false
}

// destroy tears t down child first. detach removes t's top-level nodes from
// their parent; descendants leave with them.
func (r *Renderer) destroy(t *Tree, detach bool) {
	if t == nil {
		return
	}
	switch t.vnode.Kind {
	case vdom.KindElement:
		for _, c := range t.children {
			r.destroy(c, false)
		}
		r.releaseHandlers(t)
		if detach {
			dom.Remove(t.node)
		}

	case vdom.KindText:
		if detach {
			dom.Remove(t.node)
		}

	case vdom.KindRaw:
		if detach {
			for _, n := range t.raw {
				dom.Remove(n)
			}
		}

	case vdom.KindFragment:
		for _, c := range t.children {
			r.destroy(c, detach)
		}

	case vdom.KindComponent:
		r.destroy(t.rendered, detach)
		if d, ok := t.comp.(vdom.Destroyer); ok {
			d.Destroyed()
		}

	case vdom.KindTeleport:
		t.portal.OnDestroy()
		r.releaseHandlers(t)
		if detach {
			dom.Remove(t.node)
		}
	}
}
