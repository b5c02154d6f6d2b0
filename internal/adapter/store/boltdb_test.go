package store

import (
	"path/filepath"
	"testing"
	"time"

	"docsearch/config"
	"docsearch/internal/domain"
	"docsearch/internal/port"
)

func openTestStore(t *testing.T) *BoltStore {
	t.Helper()
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestBoltStore_DocRoundTrip(t *testing.T) {
	st := openTestStore(t)

	mod := time.Unix(1700000000, 123456789)
	doc := domain.Document{Path: "gl4/glClear.xhtml", ModTime: mod, Terms: domain.TermFreq{"CLEAR": 3, "BUFFER": 1}}
	if err := st.PutDoc(doc); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetDoc("gl4/glClear.xhtml")
	if err != nil {
		t.Fatal(err)
	}
	if !got.ModTime.Equal(mod) {
		t.Errorf("expected mod time %v, got %v", mod, got.ModTime)
	}
	if got.Terms["CLEAR"] != 3 || got.Terms["BUFFER"] != 1 {
		t.Errorf("unexpected terms: %v", got.Terms)
	}

	if err := st.DeleteDoc(doc.Path); err != nil {
		t.Fatal(err)
	}
	if _, err := st.GetDoc(doc.Path); err == nil {
		t.Error("expected error after delete")
	}
}

func TestBoltStore_BatchIndex(t *testing.T) {
	st := openTestStore(t)

	first := port.IndexBatch{
		Put: []domain.Document{
			{Path: "a", ModTime: time.Unix(1, 0), Terms: domain.TermFreq{"X": 1}},
			{Path: "b", ModTime: time.Unix(1, 0), Terms: domain.TermFreq{"X": 2, "Y": 1}},
		},
		DocFreq: domain.DocFreq{"X": 2, "Y": 1},
	}
	if err := st.BatchIndex(first); err != nil {
		t.Fatal(err)
	}

	second := port.IndexBatch{
		Delete:  []string{"a"},
		DocFreq: domain.DocFreq{"X": 1, "Y": 1},
	}
	if err := st.BatchIndex(second); err != nil {
		t.Fatal(err)
	}

	docs, err := st.ListDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].Path != "b" {
		t.Fatalf("expected only b to remain, got %v", docs)
	}

	df, err := st.GetDocFreq()
	if err != nil {
		t.Fatal(err)
	}
	if df["X"] != 1 || df["Y"] != 1 || len(df) != 2 {
		t.Errorf("unexpected doc freq: %v", df)
	}

	stats, err := st.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalDocs != 1 || stats.TotalTerms != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestBoltStore_Migrations(t *testing.T) {
	st := openTestStore(t)
	cfg := config.DefaultConfig()

	result, err := st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsMigration {
		t.Error("expected fresh store to need migration")
	}

	if err := st.Migrate(cfg); err != nil {
		t.Fatal(err)
	}
	result, err = st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.NeedsMigration || result.NeedsRebuild {
		t.Errorf("expected clean store after migration, got %+v", result)
	}

	cfg.Index.NormalizeCase = !cfg.Index.NormalizeCase
	result, err = st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsRebuild {
		t.Error("expected rebuild after changing case normalization")
	}
}

func TestBoltStore_Clear(t *testing.T) {
	st := openTestStore(t)
	cfg := config.DefaultConfig()
	if err := st.Migrate(cfg); err != nil {
		t.Fatal(err)
	}

	err := st.BatchIndex(port.IndexBatch{
		Put:     []domain.Document{{Path: "a", Terms: domain.TermFreq{"X": 1}}},
		DocFreq: domain.DocFreq{"X": 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}

	docs, _ := st.ListDocs()
	if len(docs) != 0 {
		t.Errorf("expected no docs after clear, got %d", len(docs))
	}
	info, err := st.GetSchemaInfo()
	if err != nil {
		t.Fatal(err)
	}
	if info.Version != CurrentSchemaVersion {
		t.Errorf("expected schema version to survive clear, got %d", info.Version)
	}
}
