package teleport

import (
	"errors"
	"fmt"

	vangoerrors "github.com/vango-dev/teleport/internal/errors"
)

// ArityError reports a teleport whose children do not reduce to exactly
// one element.
type ArityError struct {
	Observed int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("teleport: must have exactly one non-text child (has %d)", e.Observed)
}

func (e *ArityError) Unwrap() error {
	return vangoerrors.New(vangoerrors.CodeTeleportArity).
		WithDetail(fmt.Sprintf("The teleport has %d element children.", e.Observed)).
		WithSuggestion("Wrap the teleported content in a single element.").
		WithExample(`vdom.Teleport(vdom.To("#modals"),
    vdom.Div(vdom.H2("Title"), vdom.P("Body")),
)`)
}

// ErrTargetInsideTeleport is the cause of a TargetNotFoundError whose
// locator matched the placeholder, an element inside it, or an element of
// the relocated content itself.
var ErrTargetInsideTeleport = errors.New("target is part of the teleport itself")

// TargetNotFoundError reports a target selector that matched nothing. Err
// is set when the selector is invalid or the match cannot host the content.
type TargetNotFoundError struct {
	Locator string
	Err     error
}

func (e *TargetNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("teleport: invalid target %q: %v", e.Locator, e.Err)
	}
	return fmt.Sprintf("teleport: could not find any match for %q", e.Locator)
}

func (e *TargetNotFoundError) Unwrap() []error {
	ve := vangoerrors.New(vangoerrors.CodeTeleportTarget)
	switch {
	case e.Err == nil:
		ve = ve.WithDetail(fmt.Sprintf("No element matches %q.", e.Locator)).
			WithSuggestion("Render the target container before the teleport.")
		return []error{ve}
	case errors.Is(e.Err, ErrTargetInsideTeleport):
		ve = ve.WithDetail(fmt.Sprintf("%q matches the placeholder or the teleported content.", e.Locator)).
			WithSuggestion("Point the teleport at a container outside of it.")
	default:
		ve = ve.WithDetail(e.Err.Error())
	}
	return []error{ve, e.Err}
}

// InvalidEventError reports an event type that cannot be part of an
// EventSet.
type InvalidEventError struct {
	Event string
}

func (e *InvalidEventError) Error() string {
	return fmt.Sprintf("teleport: event %q cannot be redirected", e.Event)
}

func (e *InvalidEventError) Unwrap() error {
	return vangoerrors.New(vangoerrors.CodeRedirectEvent).
		WithDetail(fmt.Sprintf("%q is a native interaction event or not a valid pattern.", e.Event))
}

type destroyedError struct{}

func (destroyedError) Error() string { return "teleport: used after destroy" }

func (destroyedError) Unwrap() error {
	return vangoerrors.New(vangoerrors.CodeTeleportDestroyed)
}

// ErrDestroyed is returned by every Controller call after OnDestroy.
var ErrDestroyed error = destroyedError{}

// ErrorKind classifies err for metrics labels.
func ErrorKind(err error) string {
	var (
		arity  *ArityError
		target *TargetNotFoundError
		event  *InvalidEventError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &arity):
		return "arity"
	case errors.As(err, &target):
		return "target_not_found"
	case errors.Is(err, ErrDestroyed):
		return "destroyed"
	case errors.As(err, &event):
		return "invalid_event"
	default:
		return "descendant"
	}
}
