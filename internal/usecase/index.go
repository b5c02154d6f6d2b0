package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"docsearch/internal/domain"
	"docsearch/internal/port"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// IndexUseCase handles file indexing operations.
type IndexUseCase struct {
	store     port.IndexStore
	walker    port.FileWalker
	extractor port.TextExtractor
	tokenizer port.Tokenizer
	workers   int
	logger    logrus.FieldLogger
}

// NewIndexUseCase creates a new index use case.
func NewIndexUseCase(
	store port.IndexStore,
	walker port.FileWalker,
	extractor port.TextExtractor,
	tokenizer port.Tokenizer,
	workers int,
	logger logrus.FieldLogger,
) *IndexUseCase {
	if workers <= 0 {
		workers = 1
	}
	return &IndexUseCase{
		store:     store,
		walker:    walker,
		extractor: extractor,
		tokenizer: tokenizer,
		workers:   workers,
		logger:    logger,
	}
}

// ProgressFunc is told about every processed file.
type ProgressFunc func(processed, total int, currentFile string)

// IndexResult contains the results of an indexing operation.
type IndexResult struct {
	FilesIndexed int
	FilesSkipped int
	FilesDeleted int
	TotalDocs    int
	Errors       []string
}

// Index brings the store up to date with the files under root. Unchanged
// files are skipped, vanished files are removed, and a file that cannot be
// read is reported in IndexResult.Errors without failing the run.
func (u *IndexUseCase) Index(ctx context.Context, root string, progress ProgressFunc) (*IndexResult, error) {
	result := &IndexResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	existingDocs, err := u.store.ListDocs()
	if err != nil {
		return nil, fmt.Errorf("failed to list existing docs: %w", err)
	}

	model := domain.NewModel()
	for _, doc := range existingDocs {
		model.Docs[doc.Path] = doc
	}

	seen := make(map[string]bool, len(files))
	var pending []port.FileInfo
	for _, file := range files {
		seen[file.RelPath] = true
		if existing, ok := model.Docs[file.RelPath]; ok && existing.ModTime.UnixNano() >= file.ModTime {
			result.FilesSkipped++
			continue
		}
		pending = append(pending, file)
	}

	indexed := make([]*domain.Document, len(pending))
	failures := make([]error, len(pending))

	var mu sync.Mutex
	processed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)
	for i, file := range pending {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			doc, err := u.indexFile(file)
			if err != nil {
				failures[i] = err
			} else {
				indexed[i] = doc
			}

			if progress != nil {
				mu.Lock()
				processed++
				progress(processed, len(pending), file.RelPath)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := port.IndexBatch{}
	for i, file := range pending {
		if failures[i] != nil {
			u.logger.WithError(failures[i]).WithField("path", file.RelPath).Warn("failed to index file")
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to index file %s: %v", file.RelPath, failures[i]))
			continue
		}
		model.Docs[file.RelPath] = *indexed[i]
		batch.Put = append(batch.Put, *indexed[i])
		result.FilesIndexed++
	}

	for path := range model.Docs {
		if !seen[path] {
			delete(model.Docs, path)
			batch.Delete = append(batch.Delete, path)
			result.FilesDeleted++
		}
	}

	model.RebuildDocFreq()
	batch.DocFreq = model.DocFreq

	if err := u.store.BatchIndex(batch); err != nil {
		return nil, fmt.Errorf("failed to write index: %w", err)
	}

	result.TotalDocs = len(model.Docs)
	u.logger.WithFields(logrus.Fields{
		"indexed": result.FilesIndexed,
		"skipped": result.FilesSkipped,
		"deleted": result.FilesDeleted,
		"terms":   len(model.DocFreq),
	}).Info("index updated")

	return result, nil
}

func (u *IndexUseCase) indexFile(file port.FileInfo) (*domain.Document, error) {
	u.logger.WithField("path", file.RelPath).Debug("indexing")

	text, err := u.extractor.ExtractFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	terms := make(domain.TermFreq)
	for _, token := range u.tokenizer.Tokenize(text) {
		terms[token]++
	}

	return &domain.Document{
		Path:    file.RelPath,
		ModTime: time.Unix(0, file.ModTime),
		Terms:   terms,
	}, nil
}

// LoadModel reads every document and the document frequencies from store.
func LoadModel(store port.IndexStore) (*domain.Model, error) {
	docs, err := store.ListDocs()
	if err != nil {
		return nil, fmt.Errorf("failed to list docs: %w", err)
	}
	df, err := store.GetDocFreq()
	if err != nil {
		return nil, fmt.Errorf("failed to read document frequencies: %w", err)
	}

	model := domain.NewModel()
	for _, doc := range docs {
		model.Docs[doc.Path] = doc
	}
	model.DocFreq = df
	return model, nil
}
