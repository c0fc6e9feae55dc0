package vdom

import "strings"

// EventCategory groups native DOM event types.
type EventCategory uint8

const (
	CategoryCustom EventCategory = iota // Not a native event type
	CategoryMouse
	CategoryPointer
	CategoryKeyboard
	CategoryFocus
	CategoryForm
	CategoryTouch
	CategoryDrag
	CategoryClipboard
	CategoryScroll
	CategoryMedia
	CategoryLoad
	CategoryAnimation
)

// String returns the string representation of the EventCategory.
func (c EventCategory) String() string {
	switch c {
	case CategoryCustom:
		return "custom"
	case CategoryMouse:
		return "mouse"
	case CategoryPointer:
		return "pointer"
	case CategoryKeyboard:
		return "keyboard"
	case CategoryFocus:
		return "focus"
	case CategoryForm:
		return "form"
	case CategoryTouch:
		return "touch"
	case CategoryDrag:
		return "drag"
	case CategoryClipboard:
		return "clipboard"
	case CategoryScroll:
		return "scroll"
	case CategoryMedia:
		return "media"
	case CategoryLoad:
		return "load"
	case CategoryAnimation:
		return "animation"
	default:
		return "unknown"
	}
}

// nativeEvents maps browser event types to their category.
var nativeEvents = map[string]EventCategory{
	"click": CategoryMouse, "dblclick": CategoryMouse, "mousedown": CategoryMouse,
	"mouseup": CategoryMouse, "mousemove": CategoryMouse, "mouseenter": CategoryMouse,
	"mouseleave": CategoryMouse, "mouseover": CategoryMouse, "mouseout": CategoryMouse,
	"contextmenu": CategoryMouse,

	"pointerdown": CategoryPointer, "pointerup": CategoryPointer, "pointermove": CategoryPointer,
	"pointerenter": CategoryPointer, "pointerleave": CategoryPointer, "pointercancel": CategoryPointer,
	"pointerover": CategoryPointer, "pointerout": CategoryPointer,

	"keydown": CategoryKeyboard, "keyup": CategoryKeyboard, "keypress": CategoryKeyboard,

	"focus": CategoryFocus, "blur": CategoryFocus, "focusin": CategoryFocus, "focusout": CategoryFocus,

	"input": CategoryForm, "change": CategoryForm, "submit": CategoryForm, "reset": CategoryForm,
	"invalid": CategoryForm, "select": CategoryForm, "beforeinput": CategoryForm,

	"touchstart": CategoryTouch, "touchmove": CategoryTouch, "touchend": CategoryTouch,
	"touchcancel": CategoryTouch,

	"dragstart": CategoryDrag, "drag": CategoryDrag, "dragend": CategoryDrag, "dragenter": CategoryDrag,
	"dragover": CategoryDrag, "dragleave": CategoryDrag, "drop": CategoryDrag,

	"copy": CategoryClipboard, "cut": CategoryClipboard, "paste": CategoryClipboard,

	"scroll": CategoryScroll, "scrollend": CategoryScroll, "wheel": CategoryScroll,

	"play": CategoryMedia, "pause": CategoryMedia, "ended": CategoryMedia, "timeupdate": CategoryMedia,
	"volumechange": CategoryMedia, "seeking": CategoryMedia, "seeked": CategoryMedia,

	"load": CategoryLoad, "error": CategoryLoad, "abort": CategoryLoad,

	"animationstart": CategoryAnimation, "animationend": CategoryAnimation,
	"transitionstart": CategoryAnimation, "transitionend": CategoryAnimation,
}

// interactionCategories are the native categories driven directly by user
// input. Their browser propagation path is fixed by the physical tree.
var interactionCategories = map[EventCategory]bool{
	CategoryMouse:     true,
	CategoryPointer:   true,
	CategoryKeyboard:  true,
	CategoryFocus:     true,
	CategoryForm:      true,
	CategoryTouch:     true,
	CategoryDrag:      true,
	CategoryClipboard: true,
	CategoryScroll:    true,
}

// Categorize returns the category of an event type. Unknown types are
// CategoryCustom.
func Categorize(eventType string) EventCategory {
	if c, ok := nativeEvents[strings.ToLower(eventType)]; ok {
		return c
	}
	return CategoryCustom
}

// IsNativeInteraction reports whether eventType is a native user
// interaction event (pointer, keyboard, focus, form lifecycle, ...).
func IsNativeInteraction(eventType string) bool {
	return interactionCategories[Categorize(eventType)]
}

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + strings.ToLower(name), Handler: handler}
}

// On handles an arbitrary event type, typically a custom event.
// Handlers may be func() or func(*dom.Event).
func On(eventType string, handler any) EventHandler { return event(eventType, handler) }

// Mouse events

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) EventHandler { return event("dblclick", handler) }

// OnMouseEnter handles mouseenter events.
func OnMouseEnter(handler any) EventHandler { return event("mouseenter", handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler any) EventHandler { return event("mouseleave", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) EventHandler { return event("keydown", handler) }

// Form events

// OnInput handles input events.
func OnInput(handler any) EventHandler { return event("input", handler) }

// OnChange handles change events.
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// OnFocus handles focus events.
func OnFocus(handler any) EventHandler { return event("focus", handler) }

// Semantic events. These are not produced by the browser on their own but
// are commonly dispatched by dialog-like components.

// OnClose handles close events.
func OnClose(handler any) EventHandler { return event("close", handler) }

// OnCancel handles cancel events.
func OnCancel(handler any) EventHandler { return event("cancel", handler) }

// OnToggle handles toggle events.
func OnToggle(handler any) EventHandler { return event("toggle", handler) }
