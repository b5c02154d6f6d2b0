package cli

import (
	"fmt"

	"docsearch/internal/adapter/analyzer"
	"docsearch/internal/adapter/cache"
	"docsearch/internal/adapter/retriever"
	"docsearch/internal/adapter/store"
	"docsearch/internal/server"
	"docsearch/internal/usecase"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search API and page over HTTP",
	Long: `Load the index into memory and answer POST /api/search with a JSON
object of path to score. The search page is served at /.

Examples:
  docsearch serve                      # Listen on the configured port
  docsearch serve -p 6969 -i gl.db     # Serve gl.db on port 6969`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	log := GetLogger()

	dbPath := GetIndexPath()
	st, err := store.OpenReadOnly(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open index %s: %w", dbPath, err)
	}
	model, err := usecase.LoadModel(st)
	st.Close()
	if err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}

	var qc *cache.QueryCache
	if cfg.Search.CacheSize > 0 {
		qc = cache.NewQueryCache(cfg.Search.CacheSize, cfg.Search.CacheTTL)
	}

	searchUC := usecase.NewSearchUseCase(
		retriever.NewTFIDFRetriever(analyzer.NewTokenizer(cfg.Index.NormalizeCase), log),
		qc,
		cfg.Search.MaxResults,
		log,
	)
	searchUC.Load(model)

	serverCfg := cfg.Server
	if servePort != 0 {
		serverCfg.Port = servePort
	}

	srv := server.New(serverCfg, searchUC, log)
	srv.SetIndexedDocs(len(model.Docs))

	fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://localhost:%d/\n", serverCfg.Port)
	return srv.Run(cmd.Context())
}
