package port

import (
	"context"

	"docsearch/internal/domain"
)

// Searcher scores a raw query against the loaded index.
type Searcher interface {
	Search(ctx context.Context, query string) (domain.Ranking, error)
}
