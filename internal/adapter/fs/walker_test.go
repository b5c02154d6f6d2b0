package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("<p>x</p>"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalker_IncludesAndExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "gl4/glClear.xhtml")
	writeFile(t, root, "gl4/sub/glFlush.xhtml")
	writeFile(t, root, "gl4/readme.md")
	writeFile(t, root, ".docsearch/cache.xhtml")

	w := NewWalker([]string{"**/*.xhtml"}, []string{"**/.docsearch/**"})
	files, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
	if files[0].RelPath != "gl4/glClear.xhtml" {
		t.Errorf("expected gl4/glClear.xhtml first, got %s", files[0].RelPath)
	}
	if files[1].RelPath != "gl4/sub/glFlush.xhtml" {
		t.Errorf("expected gl4/sub/glFlush.xhtml second, got %s", files[1].RelPath)
	}
	if !filepath.IsAbs(files[0].Path) {
		t.Errorf("expected absolute path, got %s", files[0].Path)
	}
	if files[0].ModTime == 0 {
		t.Error("expected mod time to be set")
	}
}

func TestWalker_DefaultIncludesEverything(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt")
	writeFile(t, root, "b/c.xhtml")

	files, err := NewWalker(nil, nil).Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %d", len(files))
	}
}

func TestWalker_MissingRoot(t *testing.T) {
	_, err := NewWalker(nil, nil).Walk(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("expected error for missing root")
	}
}
