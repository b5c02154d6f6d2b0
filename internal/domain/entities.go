package domain

import "time"

// TermFreq counts how often each term occurs in one document.
type TermFreq map[string]int

// DocFreq counts how many documents contain each term.
type DocFreq map[string]int

type Document struct {
	Path    string
	ModTime time.Time
	Terms   TermFreq
}

// Total returns the number of term occurrences in the document.
func (d Document) Total() int {
	total := 0
	for _, n := range d.Terms {
		total += n
	}
	return total
}

// Model is the in-memory form of an index: every document plus the
// corpus-wide document frequencies.
type Model struct {
	Docs    map[string]Document
	DocFreq DocFreq
}

func NewModel() *Model {
	return &Model{
		Docs:    make(map[string]Document),
		DocFreq: make(DocFreq),
	}
}

// RebuildDocFreq recomputes DocFreq from the documents' term tables.
func (m *Model) RebuildDocFreq() {
	df := make(DocFreq)
	for _, doc := range m.Docs {
		for term := range doc.Terms {
			df[term]++
		}
	}
	m.DocFreq = df
}

type Stats struct {
	TotalDocs  int
	TotalTerms int
}
