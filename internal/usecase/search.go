package usecase

import (
	"context"
	"sync"

	"docsearch/internal/adapter/cache"
	"docsearch/internal/adapter/retriever"
	"docsearch/internal/domain"
	"docsearch/internal/port"
	"github.com/sirupsen/logrus"
)

// SearchUseCase answers queries against an in-memory model.
type SearchUseCase struct {
	retriever  *retriever.TFIDFRetriever
	cache      *cache.QueryCache // optional
	maxResults int               // 0 = unlimited
	logger     logrus.FieldLogger

	mu    sync.RWMutex
	model *domain.Model
}

var _ port.Searcher = (*SearchUseCase)(nil)

// NewSearchUseCase creates a new search use case over an empty model.
func NewSearchUseCase(
	retriever *retriever.TFIDFRetriever,
	cache *cache.QueryCache,
	maxResults int,
	logger logrus.FieldLogger,
) *SearchUseCase {
	return &SearchUseCase{
		retriever:  retriever,
		cache:      cache,
		maxResults: maxResults,
		logger:     logger,
		model:      domain.NewModel(),
	}
}

// Load swaps in a new model and forgets cached rankings.
func (u *SearchUseCase) Load(model *domain.Model) {
	u.mu.Lock()
	u.model = model
	u.mu.Unlock()

	if u.cache != nil {
		u.cache.Invalidate()
	}
	u.logger.WithField("docs", len(model.Docs)).Info("index loaded")
}

// Search ranks the loaded documents against query.
func (u *SearchUseCase) Search(ctx context.Context, query string) (domain.Ranking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if u.cache != nil {
		if ranking, ok := u.cache.Get(query); ok {
			return ranking, nil
		}
	}

	u.mu.RLock()
	model := u.model
	u.mu.RUnlock()

	ranking := u.retriever.Search(query, model)
	if u.maxResults > 0 && len(ranking) > u.maxResults {
		ranking = ranking[:u.maxResults]
	}

	if u.cache != nil {
		u.cache.Put(query, ranking)
	}
	return ranking, nil
}

// Stats reports the size of the loaded model.
func (u *SearchUseCase) Stats() domain.Stats {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return domain.Stats{TotalDocs: len(u.model.Docs), TotalTerms: len(u.model.DocFreq)}
}
