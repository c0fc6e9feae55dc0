package teleport

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/vango-dev/teleport/pkg/dom"
	"github.com/vango-dev/teleport/pkg/vdom"
	"golang.org/x/net/html"
)

// DefaultRedirectEvents is the allow-list used when none is configured.
var DefaultRedirectEvents = MustEventSet("close", "cancel", "confirm", "dismiss", "toggle", "portal:*")

// EventSet is an immutable allow-list of event types. Entries are exact
// names or glob patterns ("app:*"). Native interaction events never match.
type EventSet struct {
	names    map[string]struct{}
	patterns []string
}

// NewEventSet builds an EventSet. Names are lower-cased. A native
// interaction event or a malformed pattern is an *InvalidEventError.
func NewEventSet(events ...string) (EventSet, error) {
	set := EventSet{names: make(map[string]struct{})}
	for _, e := range events {
		e = strings.ToLower(strings.TrimSpace(e))
		switch {
		case e == "" || !doublestar.ValidatePattern(e):
			return EventSet{}, &InvalidEventError{Event: e}
		case strings.ContainsAny(e, "*?[{\\"):
			set.patterns = append(set.patterns, e)
		case vdom.IsNativeInteraction(e):
			return EventSet{}, &InvalidEventError{Event: e}
		default:
			set.names[e] = struct{}{}
		}
	}
	return set, nil
}

// MustEventSet is NewEventSet for static lists; it panics on error.
func MustEventSet(events ...string) EventSet {
	set, err := NewEventSet(events...)
	if err != nil {
		panic(err)
	}
	return set
}

// Contains reports whether eventType is redirected.
func (s EventSet) Contains(eventType string) bool {
	return s.named(eventType) || s.matched(eventType)
}

// Events returns the names and patterns of the set, sorted.
func (s EventSet) Events() []string {
	out := make([]string, 0, len(s.names)+len(s.patterns))
	for name := range s.names {
		out = append(out, name)
	}
	out = append(out, s.patterns...)
	sort.Strings(out)
	return out
}

// Len returns the number of entries.
func (s EventSet) Len() int {
	return len(s.names) + len(s.patterns)
}

func (s EventSet) String() string {
	return strings.Join(s.Events(), ",")
}

func (s EventSet) named(eventType string) bool {
	_, ok := s.names[eventType]
	return ok
}

// matched reports a pattern match for a type that is not also a name.
func (s EventSet) matched(eventType string) bool {
	if s.named(eventType) || vdom.IsNativeInteraction(eventType) {
		return false
	}
	for _, p := range s.patterns {
		if ok, _ := doublestar.Match(p, eventType); ok {
			return true
		}
	}
	return false
}

// Redirector re-emits allow-listed custom events fired inside a relocated
// root on the placeholder it serves.
type Redirector struct {
	doc         *dom.Document
	placeholder *html.Node
	events      EventSet

	root    *html.Node
	handles []*dom.Listener

	onRedirect func(eventType string)
}

// NewRedirector creates a Redirector that dispatches on placeholder.
func NewRedirector(doc *dom.Document, placeholder *html.Node, events EventSet) *Redirector {
	return &Redirector{doc: doc, placeholder: placeholder, events: events}
}

// OnRedirect registers fn to be called for every redirected event.
func (r *Redirector) OnRedirect(fn func(eventType string)) {
	r.onRedirect = fn
}

// Root returns the root the listeners are bound to.
func (r *Redirector) Root() *html.Node {
	return r.root
}

// Bind attaches the listeners to root. Binding the bound root again does
// nothing; binding another root unbinds the current one first.
func (r *Redirector) Bind(root *html.Node) {
	if root == r.root {
		return
	}
	r.Unbind()
	if root == nil {
		return
	}
	r.root = root
	for name := range r.events.names {
		r.handles = append(r.handles, r.doc.AddEventListener(root, name, r.redirect))
	}
	if len(r.events.patterns) > 0 {
		r.handles = append(r.handles, r.doc.AddEventListener(root, dom.AnyEvent, r.redirectMatched))
	}
}

// Unbind removes every listener. Unbinding twice is a no-op.
func (r *Redirector) Unbind() {
	for _, l := range r.handles {
		l.Remove()
	}
	r.handles = nil
	r.root = nil
}

func (r *Redirector) redirectMatched(ev *dom.Event) {
	if r.events.matched(ev.Type) {
		r.redirect(ev)
	}
}

func (r *Redirector) redirect(ev *dom.Event) {
	if !ev.Custom || ev.Source == r {
		return
	}
	ev.StopPropagation()

	out := dom.NewCustomEvent(ev.Type, ev.Detail)
	out.Bubbles = ev.Bubbles
	out.Source = r
	if r.onRedirect != nil {
		r.onRedirect(ev.Type)
	}
	r.doc.DispatchEvent(r.placeholder, out)
}
