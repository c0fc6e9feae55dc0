package render

import (
	"fmt"

	"github.com/vango-dev/teleport/pkg/vdom"
)

// check walks next against prev the way patch will, without touching the
// DOM. Every active teleport is validated here: existing ones through
// OnWillPatch, new ones by opening their placeholder and portal up front.
// A failure leaves the document as it was.
func (r *Renderer) check(prev *Tree, next *vdom.VNode, pass *Pass) error {
	switch {
	case next == nil:
		return nil
	case prev == nil || !sameType(prev.vnode, next):
		return r.checkCreate(next, pass)
	}
	return r.checkUpdate(prev, next, pass)
}

func (r *Renderer) checkCreate(v *vdom.VNode, pass *Pass) error {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case vdom.KindText, vdom.KindRaw:
		return nil

	case vdom.KindElement, vdom.KindFragment:
		for _, c := range v.Children {
			if err := r.checkCreate(c, pass); err != nil {
				return err
			}
		}
		return nil

	case vdom.KindComponent:
		if v.Comp == nil {
			return nil
		}
		return r.checkCreate(pass.render(v), pass)

	case vdom.KindTeleport:
		t := &Tree{vnode: v}
		if err := r.openTeleport(t, v); err != nil {
			return err
		}
		pass.open(v, t)
		return nil
	}
	return fmt.Errorf("render: unknown node kind %s", v.Kind)
}

func (r *Renderer) checkUpdate(t *Tree, next *vdom.VNode, pass *Pass) error {
	switch next.Kind {
	case vdom.KindElement, vdom.KindFragment:
		olds, _ := matchChildren(t.children, next.Children)
		for i, c := range next.Children {
			if err := r.check(olds[i], c, pass); err != nil {
				return err
			}
		}

	case vdom.KindComponent:
		if next.Comp != nil {
			return r.check(t.rendered, pass.render(next), pass)
		}

	case vdom.KindTeleport:
		if next.TeleportActive() {
			if err := t.portal.OnWillPatch(next); err != nil {
				return err
			}
			pass.accept(t)
		}
	}
	return nil
}
