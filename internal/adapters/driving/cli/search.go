package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchScope string
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search ingested chunks without calling the model",
	Long: `Runs the lexical retrieval pass on its own and prints the ranked
evidence for the organisation scope. Useful for checking what the
answer pipeline would see for a query.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchScope, "scope", "", "organisation scope (required)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from settings)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	_ = searchCmd.MarkFlagRequired("scope")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	results, err := retrievalService.Search(context.Background(), args[0], searchScope, searchLimit)
	if err != nil {
		return fmt.Errorf("searching chunks: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No matching chunks.")
		return nil
	}

	cmd.Println("Results:")
	for i, item := range results {
		cmd.Printf("  [%d] (%.0f) %s: %s\n", i+1, item.Score, item.Source, item.Text)
	}
	return nil
}
