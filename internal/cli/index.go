package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"docsearch/config"
	"docsearch/internal/adapter/analyzer"
	"docsearch/internal/adapter/fs"
	"docsearch/internal/adapter/memstore"
	"docsearch/internal/adapter/store"
	"docsearch/internal/adapter/xhtml"
	"docsearch/internal/port"
	"docsearch/internal/usecase"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Index documents for search",
	Long: `Index the documents in the specified directory. Only files changed since
the last run are read again; files that disappeared are dropped.

Examples:
  docsearch index .                     # Index current directory
  docsearch index ./docs.gl -i gl.db    # Index a directory into gl.db
  docsearch index ./docs.gl --dry-run   # Index in memory, write nothing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

var indexDryRun bool

func init() {
	indexCmd.Flags().BoolVar(&indexDryRun, "dry-run", false, "index in memory without touching the index database")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()
	log := GetLogger()

	dbPath := GetIndexPath()

	var st port.IndexStore
	if indexDryRun {
		st = memstore.NewMemoryStore()
	} else {
		bolt, err := openIndexForWrite(dbPath)
		if err != nil {
			return err
		}
		defer bolt.Close()
		st = bolt
	}

	indexUC := usecase.NewIndexUseCase(
		st,
		fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes),
		xhtml.NewExtractor(),
		analyzer.NewTokenizer(cfg.Index.NormalizeCase),
		cfg.Index.Workers,
		log,
	)

	fmt.Printf("Scanning %s...\n", path)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var startTime time.Time

	progressCallback := func(processed, total int, currentFile string) {
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Indexing[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}

		bar.Set(processed)

		elapsed := time.Since(startTime)
		rate := float64(processed) / elapsed.Seconds()
		if remaining := total - processed; rate > 0 && remaining > 0 {
			eta := time.Duration(float64(remaining)/rate) * time.Second
			bar.Describe(fmt.Sprintf("[cyan]Indexing[reset] ETA: %s", formatDuration(eta)))
		}
	}

	result, err := indexUC.Index(cmd.Context(), path, progressCallback)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if bolt, ok := st.(*store.BoltStore); ok {
		if err := bolt.Migrate(cfg); err != nil {
			return fmt.Errorf("failed to update schema info: %w", err)
		}
	}

	fmt.Printf("\nIndexing complete:\n")
	fmt.Printf("  Files indexed:  %d\n", result.FilesIndexed)
	fmt.Printf("  Files skipped:  %d (unchanged)\n", result.FilesSkipped)
	fmt.Printf("  Files deleted:  %d (removed)\n", result.FilesDeleted)
	fmt.Printf("  Total files:    %d\n", result.TotalDocs)

	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	if indexDryRun {
		fmt.Printf("\nDry run: %s was not modified\n", dbPath)
	} else {
		fmt.Printf("\nIndex stored at: %s\n", dbPath)
	}
	return nil
}

// openIndexForWrite opens the bolt index and rebuilds or migrates it when
// its schema or tokenizer settings no longer match the config.
func openIndexForWrite(dbPath string) (*store.BoltStore, error) {
	cfg := GetConfig()

	if err := config.EnsureIndexDir(dbPath); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open index store: %w", err)
	}

	migrationResult, err := st.CheckMigration(cfg)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to check migration: %w", err)
	}

	if migrationResult.NeedsRebuild {
		fmt.Printf("Index rebuild required: %s\n", migrationResult.Reason)
		fmt.Println("Clearing existing index...")
		if err := st.Clear(); err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to clear index: %w", err)
		}
	} else if migrationResult.NeedsMigration {
		GetLogger().WithField("reason", migrationResult.Reason).Info("running schema migration")
		if err := st.Migrate(cfg); err != nil {
			st.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	return st, nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
