package cli

import (
	"fmt"

	"docsearch/internal/adapter/store"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report how many documents an index holds",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	dbPath := GetIndexPath()

	st, err := store.OpenReadOnly(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open index %s: %w", dbPath, err)
	}
	defer st.Close()

	stats, err := st.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read index stats: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s contains %d files\n", dbPath, stats.TotalDocs)
	return nil
}
