// Package cli implements the cobra command surface. Services are
// injected once by main through the Set functions; commands read the
// package-level references.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/verity-labs/verity/internal/core/ports/driving"
	"github.com/verity-labs/verity/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services.
var (
	ingestService    driving.IngestService
	answerService    driving.AnswerService
	retrievalService driving.RetrievalService
	auditService     driving.AuditService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "verity",
	Short: "Evidence-grounded answering with a tamper-evident audit trail",
	Long: `Verity ingests organisation documents, assembles bounded evidence for
language model queries and records every exchange in an append-only,
hash-chained audit log.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetIngestService injects the ingestion service.
func SetIngestService(svc driving.IngestService) {
	ingestService = svc
}

// SetAnswerService injects the answer service.
func SetAnswerService(svc driving.AnswerService) {
	answerService = svc
}

// SetRetrievalService injects the retrieval service.
func SetRetrievalService(svc driving.RetrievalService) {
	retrievalService = svc
}

// SetAuditService injects the audit service.
func SetAuditService(svc driving.AuditService) {
	auditService = svc
}

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
