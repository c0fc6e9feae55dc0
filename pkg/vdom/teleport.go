package vdom

// Prop keys carried by teleport markers.
const (
	TeleportTargetProp = "to"
	TeleportActiveProp = "active"
)

// Teleport creates a teleport marker. Its children are rendered under the
// container matched by the To locator instead of under the marker's parent.
// Exactly one element child is accepted; the render pass rejects anything
// else before touching the DOM.
//
// Event handlers given to the marker are attached to the placeholder, which
// is where redirected events from the relocated subtree are re-emitted.
func Teleport(args ...any) *VNode {
	node := &VNode{
		Kind:     KindTeleport,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}
	applyArgs(node, args)
	return node
}

// To sets the locator (CSS selector) of a teleport's target container.
// It is re-evaluated on every render.
func To(locator string) Attr { return attr(TeleportTargetProp, locator) }

// Active toggles whether a teleport is deployed. An inactive teleport keeps
// its placeholder but withdraws its relocated subtree.
func Active(active bool) Attr { return attr(TeleportActiveProp, active) }

// TeleportTarget returns the locator of a teleport marker.
func (v *VNode) TeleportTarget() string {
	if v == nil || v.Kind != KindTeleport {
		return ""
	}
	s, _ := v.Props[TeleportTargetProp].(string)
	return s
}

// TeleportActive reports whether a teleport marker is active. Markers
// without an Active attribute are active.
func (v *VNode) TeleportActive() bool {
	if v == nil || v.Kind != KindTeleport {
		return false
	}
	active, ok := v.Props[TeleportActiveProp].(bool)
	return !ok || active
}
