// Package teleport renders a subtree under a container other than its
// logical parent.
//
// A teleport is declared with vdom.Teleport:
//
//	vdom.Div(
//	    vdom.OnClose(func() { state.Open = false }),
//	    vdom.Teleport(vdom.To("#modals"),
//	        vdom.Dialog(vdom.Open(true), "Hello"),
//	    ),
//	)
//
// The renderer leaves an empty <portal> placeholder at the teleport's
// position and hands everything else to a Controller, created per
// placeholder by the render.PortalFactory returned from Factory:
//
//	r := render.NewRenderer(render.Config{
//	    Document: doc,
//	    Portals:  teleport.Factory(teleport.WithLogger(logger)),
//	})
//
// # Deployment
//
// On every render the Controller validates that the children reduce to
// exactly one element (ArityError otherwise) and resolves the target
// selector (TargetNotFoundError when nothing matches). Both checks run
// before the pass mutates the DOM. Once the owner's DOM is in place the
// child is patched into a private scratch element and its root is moved
// under the target. Later renders patch the root in place; a changed
// target moves it without re-creating it.
//
// Several teleports may share one target. The root deployed last ends up
// last; no other ordering between them is defined.
//
// # Lifecycle
//
// Mounted hooks of relocated components run after the root is attached
// to the target, parent first. Patched hooks run after the in-place patch.
// Withdrawing, either through vdom.Active(false) or because the owner
// leaves the tree, detaches the root, unbinds its listeners and runs
// Destroyed hooks child first. Re-activation is a fresh first mount.
//
// # Events
//
// Custom events whose type is in the Controller's EventSet are stopped at
// the relocated root and re-dispatched on the placeholder, so handlers on
// the owner's ancestors observe them once. Native interaction events are
// never redirected.
package teleport
