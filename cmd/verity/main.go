// Command verity is the Verity CLI: evidence-grounded answering over
// organisation documents with a tamper-evident audit trail.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/verity-labs/verity/internal/adapters/driven/ai"
	"github.com/verity-labs/verity/internal/adapters/driven/config/file"
	"github.com/verity-labs/verity/internal/adapters/driven/storage/sqlite"
	"github.com/verity-labs/verity/internal/adapters/driven/websearch/duckduckgo"
	"github.com/verity-labs/verity/internal/adapters/driving/cli"
	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driving"
	"github.com/verity-labs/verity/internal/core/services"
	"github.com/verity-labs/verity/internal/logger"
	"github.com/verity-labs/verity/internal/normalisers"
	"github.com/verity-labs/verity/internal/normalisers/csvfile"
	"github.com/verity-labs/verity/internal/normalisers/docx"
	"github.com/verity-labs/verity/internal/normalisers/pdf"
	"github.com/verity-labs/verity/internal/normalisers/plaintext"
	"github.com/verity-labs/verity/internal/normalisers/xmlfile"
	"github.com/verity-labs/verity/internal/postprocessors"
	"github.com/verity-labs/verity/internal/postprocessors/chunker"
)

// version is overridden at build time via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional: API keys may live in a local .env file.
	_ = godotenv.Load()

	settingsStore, err := file.NewSettingsStore(os.Getenv("VERITY_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("initialising settings store: %w", err)
	}
	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("loading settings from %s: %w", settingsStore.Path(), err)
	}
	applyEnvOverrides(&settings)

	store, err := sqlite.NewStore(os.Getenv("VERITY_DATA_DIR"))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		return fmt.Errorf("configuring language model: %w", err)
	}
	if llm == nil {
		logger.Warn("No language model configured; 'ask' is unavailable until llm.provider and an API key are set in %s", settingsStore.Path())
	}

	// The evaluator reuses the primary model settings when not
	// configured separately.
	evaluatorSettings := settings.Evaluator
	if !evaluatorSettings.IsConfigured() {
		evaluatorSettings = settings.LLM
	}
	evaluatorLLM, err := ai.CreateLLMService(&evaluatorSettings)
	if err != nil {
		return fmt.Errorf("configuring evaluator model: %w", err)
	}

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(csvfile.New())
	registry.Register(xmlfile.New())
	registry.Register(docx.New())
	registry.Register(pdf.New())

	pipeline := postprocessors.NewPipeline(chunker.New(
		chunker.WithChunkSize(settings.Chunking.Size),
		chunker.WithOverlap(settings.Chunking.Overlap),
	))

	ingest := services.NewIngestPipeline(registry, pipeline, store.ChunkStore())
	retrieval := services.NewLexicalRetrieval(store.ChunkStore(),
		services.WithTopK(settings.Retrieval.TopK))
	audit := services.NewAuditLog(store.AuditStore())

	var governance driving.GovernanceService
	if settings.Governance.Enabled {
		governance = services.NewGovernanceEvaluator(evaluatorLLM,
			services.WithGovernanceTimeout(settings.Governance.Timeout))
	}

	web := duckduckgo.New(duckduckgo.Config{
		MaxResults: settings.WebSearch.MaxResults,
		Timeout:    settings.WebSearch.Timeout,
	})

	answer := services.NewCoordinator(retrieval, web, llm, governance, audit, settings)

	cli.SetIngestService(ingest)
	cli.SetRetrievalService(retrieval)
	cli.SetAnswerService(answer)
	cli.SetAuditService(audit)
	cli.SetVersion(version)

	return cli.Execute()
}

// applyEnvOverrides fills API keys from the conventional environment
// variables when the settings file leaves them empty, so keys never
// have to be written to disk.
func applyEnvOverrides(settings *domain.Settings) {
	fillAPIKey(&settings.LLM)
	fillAPIKey(&settings.Evaluator)
}

func fillAPIKey(llm *domain.LLMSettings) {
	if llm.APIKey != "" {
		return
	}
	switch llm.Provider {
	case domain.AIProviderOpenAI:
		llm.APIKey = os.Getenv("OPENAI_API_KEY")
	case domain.AIProviderAnthropic:
		llm.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
}
