package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Event is a DOM event travelling from its target through its ancestors.
type Event struct {
	// Type is the lower-case event type ("click", "close", ...).
	Type string

	// Detail is the payload of a custom event.
	Detail any

	// Bubbles reports whether the event continues past its target.
	Bubbles bool

	// Custom is true for events created with NewCustomEvent.
	Custom bool

	// Target is the node the event was dispatched on.
	Target *html.Node

	// CurrentTarget is the node whose listeners are running.
	CurrentTarget *html.Node

	// Source identifies whoever re-emitted this event on behalf of another
	// one. Nil for events dispatched directly.
	Source any

	stopped bool
}

// NewEvent creates a bubbling native event.
func NewEvent(eventType string) *Event {
	return &Event{Type: strings.ToLower(eventType), Bubbles: true}
}

// NewCustomEvent creates a bubbling custom event carrying detail.
func NewCustomEvent(eventType string, detail any) *Event {
	return &Event{Type: strings.ToLower(eventType), Detail: detail, Bubbles: true, Custom: true}
}

// StopPropagation prevents the event from reaching further ancestors.
// Listeners on the current node still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Listener is a registered event listener. Its identity is the handle used
// to remove it.
type Listener struct {
	doc     *Document
	node    *html.Node
	typ     string
	fn      func(*Event)
	removed bool
}

// Node returns the node the listener is attached to.
func (l *Listener) Node() *html.Node { return l.node }

// Type returns the event type the listener handles.
func (l *Listener) Type() string { return l.typ }

// Remove detaches the listener. Removing twice is a no-op.
func (l *Listener) Remove() {
	if l == nil || l.removed {
		return
	}
	l.removed = true
	list := l.doc.listeners[l.node]
	for i, other := range list {
		if other == l {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(l.doc.listeners, l.node)
	} else {
		l.doc.listeners[l.node] = list
	}
}

// AnyEvent is the listener type that receives events of every type.
const AnyEvent = "*"

// AddEventListener registers fn for eventType on n and returns its handle.
func (d *Document) AddEventListener(n *html.Node, eventType string, fn func(*Event)) *Listener {
	l := &Listener{doc: d, node: n, typ: strings.ToLower(eventType), fn: fn}
	d.listeners[n] = append(d.listeners[n], l)
	return l
}

// ListenerCount returns how many listeners for eventType are attached to n.
// An empty eventType counts all of them.
func (d *Document) ListenerCount(n *html.Node, eventType string) int {
	count := 0
	for _, l := range d.listeners[n] {
		if eventType == "" || l.typ == eventType {
			count++
		}
	}
	return count
}

// DispatchEvent delivers ev to target and then, if it bubbles, to each DOM
// ancestor in turn until propagation is stopped.
func (d *Document) DispatchEvent(target *html.Node, ev *Event) {
	ev.Target = target
	for n := target; n != nil; n = n.Parent {
		ev.CurrentTarget = n
		// Listeners added during dispatch wait for the next event.
		list := append([]*Listener(nil), d.listeners[n]...)
		for _, l := range list {
			if l.removed || (l.typ != ev.Type && l.typ != AnyEvent) {
				continue
			}
			l.fn(ev)
		}
		if ev.stopped || !ev.Bubbles {
			break
		}
	}
	ev.CurrentTarget = nil
}
