// Package vdom provides the Virtual DOM node model for Vango.
//
// The Virtual DOM (VDOM) is an in-memory description of the UI. The render
// package reconciles VNode trees against live DOM nodes; this package only
// describes what should exist.
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text,
// fragments, components, raw HTML and teleports. Props holds attributes and
// event handlers. Attr and EventHandler are used to build Props.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H2(Text("Title")),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// # Teleports
//
// Teleport declares a subtree that is rendered under another container
// while staying a logical child of the component that declared it:
//
//	Div(
//	    Text("page"),
//	    Teleport(To("#modals"), Active(open),
//	        Dialog(Class("confirm"), Text("Sure?")),
//	    ),
//	)
//
// The marker itself renders as an empty <portal> element at its position.
//
// # Lifecycle
//
// Components may implement Mounter, Patcher and Destroyer. The renderer
// calls them after the corresponding DOM work is done.
package vdom
