package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"docsearch/config"
	"docsearch/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	cfg       *config.Config
	rootDir   string
	indexFile string
	logger    *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docsearch",
	Short: "docsearch - index XHTML documentation and search it with TF-IDF",
	Long: `docsearch indexes a directory of XHTML documents, ranks them against
free-text queries with TF-IDF, and serves the ranking over HTTP together with
a small search page.

Example usage:
  docsearch index ./docs.gl           # Build or update the index
  docsearch check                     # Show how many documents are indexed
  docsearch serve --port 8080         # Serve /api/search and the search page
  docsearch query -q "texture image"  # Query a running server`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = logging.New(cfg.Logging, os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}

		if indexFile == "" {
			indexFile = config.IndexDBPath(rootDir)
		}

		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docsearch.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
	rootCmd.PersistentFlags().StringVarP(&indexFile, "index", "i", "", "index database (default is <dir>/.docsearch/index.db)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

func GetIndexPath() string {
	return indexFile
}

func GetLogger() *logrus.Logger {
	return logger
}
