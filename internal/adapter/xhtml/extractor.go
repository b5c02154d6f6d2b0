package xhtml

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Extractor pulls the character data out of markup documents. Files with
// other extensions are returned verbatim.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFile reads path and returns its indexable text.
func (e *Extractor) ExtractFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if !isMarkup(path) {
		data, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return e.Extract(f)
}

// Extract returns every non-blank text node of the document in document
// order, each followed by a single space. Script and style bodies are
// character data too and are kept.
func (e *Extractor) Extract(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse document: %w", err)
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				sb.WriteString(n.Data)
				sb.WriteByte(' ')
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}

	return sb.String(), nil
}

func isMarkup(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xhtml", ".html", ".htm", ".xml":
		return true
	default:
		return false
	}
}
