package render

import (
	"github.com/vango-dev/teleport/pkg/dom"
	"github.com/vango-dev/teleport/pkg/vdom"
)

// setProps applies the difference between old and next to t's node.
// Event props become listeners; with eventsOnly set every other prop is
// ignored, which is how teleport placeholders stay attribute-free.
func (r *Renderer) setProps(t *Tree, old, next vdom.Props, eventsOnly bool) {
	for key := range old {
		if _, ok := next[key]; ok {
			continue
		}
		if vdom.IsEventProp(key) {
			r.unbindHandler(t, vdom.EventName(key))
		} else if !eventsOnly {
			dom.RemoveAttr(t.node, key)
		}
	}

	for key, val := range next {
		if key == "key" {
			continue
		}
		if vdom.IsEventProp(key) {
			r.bindHandler(t, vdom.EventName(key), val)
			continue
		}
		if eventsOnly {
			continue
		}
		if prev, ok := old[key]; ok && vdom.PropsEqual(prev, val) {
			continue
		}
		if s, ok := vdom.AttrString(val); ok {
			dom.SetAttr(t.node, key, s)
		} else {
			dom.RemoveAttr(t.node, key)
		}
	}
}

// bindHandler installs one listener per event type. The listener looks the
// handler up when it fires, so re-renders only swap the map entry.
func (r *Renderer) bindHandler(t *Tree, name string, h any) {
	if t.handlers == nil {
		t.handlers = make(map[string]any)
		t.listeners = make(map[string]*dom.Listener)
	}
	t.handlers[name] = h
	if _, ok := t.listeners[name]; ok {
		return
	}
	t.listeners[name] = r.doc.AddEventListener(t.node, name, func(ev *dom.Event) {
		invoke(t.handlers[name], ev)
	})
}

func (r *Renderer) unbindHandler(t *Tree, name string) {
	if l, ok := t.listeners[name]; ok {
		l.Remove()
		delete(t.listeners, name)
	}
	delete(t.handlers, name)
}

func (r *Renderer) releaseHandlers(t *Tree) {
	for _, l := range t.listeners {
		l.Remove()
	}
	t.listeners = nil
	t.handlers = nil
}

// invoke calls a handler with the arguments its signature asks for.
// Custom event payloads reach func(any) handlers as the detail value.
func invoke(h any, ev *dom.Event) {
	switch fn := h.(type) {
	case func():
		fn()
	case func(*dom.Event):
		fn(ev)
	case func(any):
		fn(ev.Detail)
	}
}
