package port

import "docsearch/internal/domain"

type IndexStore interface {
	PutDoc(doc domain.Document) error

	GetDoc(path string) (domain.Document, error)

	DeleteDoc(path string) error

	ListDocs() ([]domain.Document, error)

	GetDocFreq() (domain.DocFreq, error)

	GetStats() (domain.Stats, error)

	// BatchIndex applies a whole indexing pass in one write.
	BatchIndex(batch IndexBatch) error

	Close() error
}

// IndexBatch is the outcome of one indexing pass.
type IndexBatch struct {
	Put     []domain.Document
	Delete  []string
	DocFreq domain.DocFreq
}
