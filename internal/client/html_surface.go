package client

import (
	"html"
	"io"

	"docsearch/internal/port"
	"github.com/PuerkitoBio/goquery"
)

// HTMLSurface renders into a parsed HTML document, mirroring what a
// browser does with the same page.
type HTMLSurface struct {
	doc *goquery.Document
}

var _ port.Surface = (*HTMLSurface)(nil)

// NewHTMLSurface parses r as the page to render into.
func NewHTMLSurface(r io.Reader) (*HTMLSurface, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &HTMLSurface{doc: doc}, nil
}

func (s *HTMLSurface) Lookup(id string) (port.Region, bool) {
	sel := s.doc.Find("[id]").FilterFunction(func(_ int, el *goquery.Selection) bool {
		v, _ := el.Attr("id")
		return v == id
	}).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return &htmlRegion{sel: sel}, true
}

// Document exposes the underlying document, e.g. for Html().
func (s *HTMLSurface) Document() *goquery.Document {
	return s.doc
}

type htmlRegion struct {
	sel *goquery.Selection
}

func (r *htmlRegion) Clear() {
	r.sel.Empty()
}

func (r *htmlRegion) Append(class, text string) {
	r.sel.AppendHtml(`<div class="` + html.EscapeString(class) + `">` + html.EscapeString(text) + `</div>`)
}
