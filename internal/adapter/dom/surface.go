//go:build js && wasm

// Package dom renders search results into the browser document.
package dom

import (
	"syscall/js"

	"docsearch/internal/port"
)

// Surface looks regions up by element id in a browser document.
type Surface struct {
	doc js.Value
}

var _ port.Surface = (*Surface)(nil)

// NewSurface binds to the global document.
func NewSurface() *Surface {
	return &Surface{doc: js.Global().Get("document")}
}

func (s *Surface) Lookup(id string) (port.Region, bool) {
	el := s.doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, false
	}
	return &region{doc: s.doc, el: el}, true
}

type region struct {
	doc js.Value
	el  js.Value
}

func (r *region) Clear() {
	r.el.Set("innerHTML", "")
}

func (r *region) Append(class, text string) {
	div := r.doc.Call("createElement", "div")
	div.Set("className", class)
	div.Set("textContent", text)
	r.el.Call("appendChild", div)
}
