package memstore

import (
	"fmt"
	"sort"
	"sync"

	"docsearch/internal/domain"
	"docsearch/internal/port"
)

// MemoryStore keeps an index in memory. `index --dry-run` and tests use it
// in place of the bolt store.
type MemoryStore struct {
	mu      sync.RWMutex
	docs    map[string]domain.Document
	docFreq domain.DocFreq
}

var _ port.IndexStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:    make(map[string]domain.Document),
		docFreq: make(domain.DocFreq),
	}
}

func (s *MemoryStore) PutDoc(doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.Path] = doc
	return nil
}

func (s *MemoryStore) GetDoc(path string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[path]
	if !ok {
		return domain.Document{}, fmt.Errorf("document not found: %s", path)
	}
	return doc, nil
}

func (s *MemoryStore) DeleteDoc(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, path)
	return nil
}

// ListDocs returns documents ordered by path.
func (s *MemoryStore) ListDocs() ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

func (s *MemoryStore) GetDocFreq() (domain.DocFreq, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	df := make(domain.DocFreq, len(s.docFreq))
	for term, n := range s.docFreq {
		df[term] = n
	}
	return df, nil
}

func (s *MemoryStore) GetStats() (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Stats{TotalDocs: len(s.docs), TotalTerms: len(s.docFreq)}, nil
}

func (s *MemoryStore) BatchIndex(batch port.IndexBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, path := range batch.Delete {
		delete(s.docs, path)
	}
	for _, doc := range batch.Put {
		s.docs[doc.Path] = doc
	}

	s.docFreq = make(domain.DocFreq, len(batch.DocFreq))
	for term, n := range batch.DocFreq {
		s.docFreq[term] = n
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
