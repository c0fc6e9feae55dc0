// Package render reconciles VNode trees against a live dom.Document.
//
// The Renderer is the diff engine: Patch compares a VNode with the tree
// mounted for the previous render and mutates the DOM in place, creating,
// moving and removing nodes as needed. It returns the new mounted Tree,
// whose Nodes are the resulting root DOM nodes.
//
// # Basic Usage
//
//	r := render.NewRenderer(render.Config{Document: doc})
//	root, err := r.Mount(container, App())
//	...
//	err = root.Update(App())
//	root.Unmount()
//
// # Lifecycle
//
// Hook calls are collected in a Pass while the tree is reconciled and run
// by Pass.Flush once the DOM is in place. Mounted hooks run parent first,
// Patched hooks run child first, Destroyed hooks run child first and
// immediately when a subtree leaves the tree.
//
// # Teleports
//
// KindTeleport nodes render an empty placeholder element. Everything else
// about them is delegated to a Portal created by Config.Portals, through
// the four calls of the Portal interface. The renderer never touches the
// relocated subtree itself.
//
// # Failures
//
// An error from a Portal or a component aborts the pass. Mount builds the
// tree in a detached element, so a failed Mount leaves the container as it
// was. A failed Update may leave already patched siblings patched; no hook
// of the aborted pass runs.
//
// A Renderer is not safe for concurrent use.
package render
