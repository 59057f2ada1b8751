package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verity-labs/verity/internal/core/domain"
)

var (
	ingestScope string
	ingestName  string
	ingestDesc  string
	ingestType  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]...",
	Short: "Ingest documents into the chunk store",
	Long: `Parses each file with the normaliser for its type, splits the text into
chunks and appends them to the organisation's chunk store. Failures are
isolated per file: one corrupt document never aborts the rest.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestScope, "scope", "", "organisation scope (required)")
	ingestCmd.Flags().StringVar(&ingestName, "name", "", "source name (defaults to the file name)")
	ingestCmd.Flags().StringVar(&ingestDesc, "desc", "", "source description")
	ingestCmd.Flags().StringVar(&ingestType, "type", "", "declared type override (defaults to the file extension)")
	_ = ingestCmd.MarkFlagRequired("scope")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	raws := make([]domain.RawDocument, 0, len(args))
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		declaredType := ingestType
		if declaredType == "" {
			declaredType = strings.TrimPrefix(filepath.Ext(path), ".")
		}
		sourceName := ingestName
		if sourceName == "" {
			sourceName = filepath.Base(path)
		}

		raws = append(raws, domain.RawDocument{
			URI:          path,
			DeclaredType: declaredType,
			SourceName:   sourceName,
			Description:  ingestDesc,
			OrgScope:     ingestScope,
			Content:      content,
		})
	}

	report, err := ingestService.IngestBatch(context.Background(), raws)
	if err != nil {
		return fmt.Errorf("ingesting documents: %w", err)
	}

	cmd.Printf("Ingested %d document(s), %d chunk(s) added.\n", len(report.Succeeded), report.ChunksAdded)
	for _, failure := range report.Failed {
		cmd.Printf("  failed: %s: %v\n", failure.URI, failure.Err)
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d document(s) failed", len(report.Failed))
	}
	return nil
}
