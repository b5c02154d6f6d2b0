package cli

import (
	"bytes"
	"fmt"

	"docsearch/internal/client"
	"docsearch/internal/server"
	"github.com/spf13/cobra"
)

var (
	queryText string
	queryURL  string
	queryHTML bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query a running server and print the ranked results",
	Long: `Send a query to a docsearch server and print the top results the same
way the search page renders them.

Examples:
  docsearch query -q "texture image"
  docsearch query -q "glTexImage2D" --url http://localhost:6969
  docsearch query -q "buffer" --html   # Print the rendered search page`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "query text (required)")
	queryCmd.Flags().StringVar(&queryURL, "url", "", "server base URL (default from config)")
	queryCmd.Flags().BoolVar(&queryHTML, "html", false, "render into the search page and print it as HTML")
	queryCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	baseURL := cfg.Client.BaseURL
	if queryURL != "" {
		baseURL = queryURL
	}

	opts := []client.Option{
		client.WithRegion(cfg.Client.DisplayRegion),
		client.WithItemClass(cfg.Client.ItemClass),
		client.WithLimit(cfg.Client.Limit),
		client.WithLogger(GetLogger()),
	}

	if !queryHTML {
		surface := client.NewTextSurface(cfg.Client.DisplayRegion)
		if err := client.New(baseURL, surface, opts...).Search(cmd.Context(), queryText); err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		_, err := surface.WriteTo(cmd.OutOrStdout())
		return err
	}

	page, err := server.IndexPage()
	if err != nil {
		return fmt.Errorf("failed to read search page: %w", err)
	}
	surface, err := client.NewHTMLSurface(bytes.NewReader(page))
	if err != nil {
		return fmt.Errorf("failed to parse search page: %w", err)
	}
	if err := client.New(baseURL, surface, opts...).Search(cmd.Context(), queryText); err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	html, err := surface.Document().Html()
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), html)
	return nil
}
