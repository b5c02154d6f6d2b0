package retriever

import (
	"math"
	"sort"

	"docsearch/internal/domain"
	"docsearch/internal/port"
	"github.com/sirupsen/logrus"
)

// logTop is how many of the best hits are written to the debug log.
const logTop = 10

type TFIDFRetriever struct {
	tokenizer port.Tokenizer
	logger    logrus.FieldLogger
}

func NewTFIDFRetriever(tokenizer port.Tokenizer, logger logrus.FieldLogger) *TFIDFRetriever {
	return &TFIDFRetriever{
		tokenizer: tokenizer,
		logger:    logger,
	}
}

// Search scores every document of model against query. Documents that
// score zero are left out. The result is sorted by score, highest first,
// with ties ordered by path.
func (r *TFIDFRetriever) Search(query string, model *domain.Model) domain.Ranking {
	terms := r.tokenizer.Tokenize(query)
	if len(terms) == 0 || len(model.Docs) == 0 {
		return domain.Ranking{}
	}

	paths := make([]string, 0, len(model.Docs))
	for path := range model.Docs {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	n := len(model.Docs)
	ranks := make(domain.Ranking, 0, len(paths))
	for _, path := range paths {
		doc := model.Docs[path]
		total := doc.Total()

		score := 0.0
		for _, term := range terms {
			score += ComputeTF(term, doc.Terms, total) * ComputeIDF(term, n, model.DocFreq)
		}
		if score > 0 {
			ranks = append(ranks, domain.Rank{Path: path, Score: score})
		}
	}

	ranks.SortDesc()

	if r.logger != nil {
		for i, rank := range ranks {
			if i == logTop {
				break
			}
			r.logger.WithFields(logrus.Fields{"path": rank.Path, "score": rank.Score}).Debug("ranked")
		}
	}

	return ranks
}

// ComputeTF is the share of a document's term occurrences taken by term.
func ComputeTF(term string, tf domain.TermFreq, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(tf[term]) / float64(total)
}

// ComputeIDF is log10(n/df). A term no document contains counts as df=1.
func ComputeIDF(term string, n int, df domain.DocFreq) float64 {
	m, ok := df[term]
	if !ok || m < 1 {
		m = 1
	}
	return math.Log10(float64(n) / float64(m))
}
