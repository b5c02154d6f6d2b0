package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for docsearch.
type Config struct {
	Index   IndexConfig   `yaml:"index"`
	Search  SearchConfig  `yaml:"search"`
	Server  ServerConfig  `yaml:"server"`
	Client  ClientConfig  `yaml:"client"`
	Logging LoggingConfig `yaml:"logging"`
}

// IndexConfig holds indexing configuration.
type IndexConfig struct {
	Includes      []string `yaml:"includes"`
	Excludes      []string `yaml:"excludes"`
	NormalizeCase bool     `yaml:"normalize_case"`
	Workers       int      `yaml:"workers"`
}

// SearchConfig holds server-side scoring configuration.
type SearchConfig struct {
	MaxResults int           `yaml:"max_results"` // 0 = return every document with a positive score
	CacheSize  int           `yaml:"cache_size"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	AssetsDir string `yaml:"assets_dir"` // holds main.wasm and wasm_exec.js
	Metrics   bool   `yaml:"metrics"`
}

// ClientConfig holds configuration for the search requester.
type ClientConfig struct {
	BaseURL       string `yaml:"base_url"`
	DisplayRegion string `yaml:"display_region"`
	ItemClass     string `yaml:"item_class"`
	Limit         int    `yaml:"limit"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Includes:      []string{"**/*.xhtml"},
			Excludes:      []string{"**/.git/**", "**/.docsearch/**", "**/node_modules/**"},
			NormalizeCase: false,
			Workers:       4,
		},
		Search: SearchConfig{
			MaxResults: 0,
			CacheSize:  100,
			CacheTTL:   5 * time.Minute,
		},
		Server: ServerConfig{
			Port:    8080,
			Metrics: true,
		},
		Client: ClientConfig{
			BaseURL:       "http://localhost:8080",
			DisplayRegion: "results",
			ItemClass:     "item",
			Limit:         20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for docsearch.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "docsearch.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".docsearch", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// IndexDBPath returns the default path to the index database.
func IndexDBPath(dir string) string {
	return filepath.Join(dir, ".docsearch", "index.db")
}

// EnsureIndexDir ensures the directory holding the index database exists.
func EnsureIndexDir(dbPath string) error {
	return os.MkdirAll(filepath.Dir(dbPath), 0755)
}
