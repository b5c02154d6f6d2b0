package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Index.Includes) != 1 || cfg.Index.Includes[0] != "**/*.xhtml" {
		t.Errorf("expected Includes=[**/*.xhtml], got %v", cfg.Index.Includes)
	}
	if cfg.Index.NormalizeCase {
		t.Error("expected NormalizeCase=false")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.Server.Port)
	}
	if cfg.Client.Limit != 20 {
		t.Errorf("expected Limit=20, got %d", cfg.Client.Limit)
	}
	if cfg.Client.DisplayRegion != "results" {
		t.Errorf("expected DisplayRegion=results, got %s", cfg.Client.DisplayRegion)
	}
	if cfg.Client.ItemClass != "item" {
		t.Errorf("expected ItemClass=item, got %s", cfg.Client.ItemClass)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "docsearch.yaml")

	content := `
index:
  normalize_case: true
  workers: 8
search:
  cache_ttl: 30s
server:
  port: 9090
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Index.NormalizeCase {
		t.Errorf("expected NormalizeCase=true, got %v", cfg.Index.NormalizeCase)
	}
	if cfg.Index.Workers != 8 {
		t.Errorf("expected Workers=8, got %d", cfg.Index.Workers)
	}
	if cfg.Search.CacheTTL != 30*time.Second {
		t.Errorf("expected CacheTTL=30s, got %s", cfg.Search.CacheTTL)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected Port=9090, got %d", cfg.Server.Port)
	}
	// untouched sections keep their defaults
	if cfg.Client.Limit != 20 {
		t.Errorf("expected Limit=20, got %d", cfg.Client.Limit)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "docsearch.yaml")
	if err := os.WriteFile(configPath, []byte("server: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".docsearch"), 0755); err != nil {
		t.Fatal(err)
	}

	content := `
client:
  limit: 5
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".docsearch", "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Client.Limit != 5 {
		t.Errorf("expected Limit=5, got %d", cfg.Client.Limit)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsearch.yaml")

	cfg := DefaultConfig()
	cfg.Server.AssetsDir = "/srv/web"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.AssetsDir != "/srv/web" {
		t.Errorf("expected AssetsDir=/srv/web, got %s", loaded.Server.AssetsDir)
	}
}

func TestIndexDBPath(t *testing.T) {
	path := IndexDBPath("/home/user/books")
	expected := filepath.Join("/home/user/books", ".docsearch", "index.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}
