package driven

import (
	"context"

	"github.com/verity-labs/verity/internal/core/domain"
)

// PostProcessor processes parsed document text to produce chunks.
// PostProcessors are chained in a pipeline.
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a parsed document and returns chunks.
	// A creating processor (the chunker) receives nil and returns new
	// chunks; a modifying processor receives and returns chunks.
	Process(ctx context.Context, doc *domain.ParsedDocument, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document through all processors in order.
	Process(ctx context.Context, doc *domain.ParsedDocument) ([]domain.Chunk, error)
}
