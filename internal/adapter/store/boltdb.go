package store

import (
	"encoding/json"
	"fmt"
	"time"

	"docsearch/internal/domain"
	"docsearch/internal/port"
	"go.etcd.io/bbolt"
)

var (
	bucketDocs  = []byte("docs")
	bucketDF    = []byte("df")
	bucketStats = []byte("stats")
	keyStats    = []byte("corpus_stats")
)

type BoltStore struct {
	db *bbolt.DB
}

var _ port.IndexStore = (*BoltStore)(nil)

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketDocs, bucketDF, bucketStats} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// OpenReadOnly opens an existing index without taking the writer lock, so
// a running server does not block a concurrent check.
func OpenReadOnly(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{ReadOnly: true, Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	return &BoltStore{db: db}, nil
}

type docMeta struct {
	ModTime int64           `json:"mod_time_ns"`
	Terms   domain.TermFreq `json:"terms"`
}

func encodeDoc(doc domain.Document) ([]byte, error) {
	return json.Marshal(docMeta{
		ModTime: doc.ModTime.UnixNano(),
		Terms:   doc.Terms,
	})
}

func decodeDoc(path string, data []byte) (domain.Document, error) {
	var meta docMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return domain.Document{}, fmt.Errorf("corrupt document %s: %w", path, err)
	}
	if meta.Terms == nil {
		meta.Terms = domain.TermFreq{}
	}
	return domain.Document{
		Path:    path,
		ModTime: time.Unix(0, meta.ModTime),
		Terms:   meta.Terms,
	}, nil
}

func (s *BoltStore) PutDoc(doc domain.Document) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := encodeDoc(doc)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketDocs).Put([]byte(doc.Path), data)
	})
}

func (s *BoltStore) GetDoc(path string) (domain.Document, error) {
	var doc domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(path))
		if data == nil {
			return fmt.Errorf("document not found: %s", path)
		}
		var err error
		doc, err = decodeDoc(path, data)
		return err
	})
	return doc, err
}

func (s *BoltStore) DeleteDoc(path string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocs).Delete([]byte(path))
	})
}

func (s *BoltStore) ListDocs() ([]domain.Document, error) {
	var docs []domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocs).ForEach(func(k, v []byte) error {
			doc, err := decodeDoc(string(k), v)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
			return nil
		})
	})
	return docs, err
}

func (s *BoltStore) GetDocFreq() (domain.DocFreq, error) {
	df := make(domain.DocFreq)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDF).ForEach(func(k, v []byte) error {
			var n int
			if err := json.Unmarshal(v, &n); err != nil {
				return fmt.Errorf("corrupt document frequency for %q: %w", k, err)
			}
			df[string(k)] = n
			return nil
		})
	})
	return df, err
}

func (s *BoltStore) GetStats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketStats).Get(keyStats)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &stats)
	})
	return stats, err
}

func (s *BoltStore) BatchIndex(batch port.IndexBatch) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		docs := tx.Bucket(bucketDocs)

		for _, path := range batch.Delete {
			if err := docs.Delete([]byte(path)); err != nil {
				return err
			}
		}
		for _, doc := range batch.Put {
			data, err := encodeDoc(doc)
			if err != nil {
				return err
			}
			if err := docs.Put([]byte(doc.Path), data); err != nil {
				return err
			}
		}

		// document frequencies are always rewritten as a whole
		if err := tx.DeleteBucket(bucketDF); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		df, err := tx.CreateBucket(bucketDF)
		if err != nil {
			return err
		}
		for term, n := range batch.DocFreq {
			data, err := json.Marshal(n)
			if err != nil {
				return err
			}
			if err := df.Put([]byte(term), data); err != nil {
				return err
			}
		}

		total := 0
		c := docs.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			total++
		}
		stats := domain.Stats{
			TotalDocs:  total,
			TotalTerms: len(batch.DocFreq),
		}
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketStats).Put(keyStats, data)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
