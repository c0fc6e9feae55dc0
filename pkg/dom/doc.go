// Package dom is the ambient document the renderer mutates.
//
// Nodes are golang.org/x/net/html nodes, so node identity is pointer
// identity and serialization is html.Render. On top of the node tree the
// Document keeps event listeners and implements browser-style dispatch:
// an event is delivered to its target and then bubbles through DOM
// ancestors until a listener calls StopPropagation.
//
//	doc := dom.NewDocument()
//	modals := doc.CreateElement("div")
//	dom.SetAttr(modals, "id", "modals")
//	dom.AppendChild(doc.Body(), modals)
//
//	n, err := doc.QuerySelector("#modals")
//
// Selectors are CSS selectors compiled with cascadia.
//
// A Document is not safe for concurrent use. Rendering is single-threaded.
package dom
