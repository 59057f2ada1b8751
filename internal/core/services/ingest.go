package services

import (
	"context"
	"fmt"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
	"github.com/verity-labs/verity/internal/core/ports/driving"
	"github.com/verity-labs/verity/internal/logger"
)

// Ensure IngestPipeline implements the interface.
var _ driving.IngestService = (*IngestPipeline)(nil)

// IngestPipeline turns raw documents into stored chunks: the registry
// picks a normaliser for the declared type, the post-processor pipeline
// produces chunks and the store appends them. Nothing is written until
// the whole document has been processed, so a failure leaves no partial
// output behind.
type IngestPipeline struct {
	registry   driven.NormaliserRegistry
	processors driven.PostProcessorPipeline
	chunks     driven.ChunkStore
}

// NewIngestPipeline creates an ingestion pipeline.
func NewIngestPipeline(registry driven.NormaliserRegistry, processors driven.PostProcessorPipeline, chunks driven.ChunkStore) *IngestPipeline {
	return &IngestPipeline{
		registry:   registry,
		processors: processors,
		chunks:     chunks,
	}
}

// Ingest parses one document and appends its chunks to the store.
func (s *IngestPipeline) Ingest(ctx context.Context, raw *domain.RawDocument) ([]domain.Chunk, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: document is nil", domain.ErrInvalidInput)
	}
	if raw.OrgScope == "" {
		return nil, fmt.Errorf("%w: org scope is required", domain.ErrInvalidInput)
	}

	normaliser, err := s.registry.ForType(raw.DeclaredType)
	if err != nil {
		return nil, fmt.Errorf("selecting normaliser for %q: %w", raw.DeclaredType, err)
	}

	result, err := normaliser.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalising %s: %w", raw.SourceName, err)
	}

	doc := result.Document
	chunks, err := s.processors.Process(ctx, &doc)
	if err != nil {
		return nil, fmt.Errorf("chunking %s: %w", raw.SourceName, err)
	}
	if len(chunks) == 0 {
		logger.Debug("Document %s produced no chunks", raw.SourceName)
		return []domain.Chunk{}, nil
	}

	if err := s.chunks.AppendChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("storing chunks for %s: %w", raw.SourceName, err)
	}

	logger.Debug("Ingested %s: %d chunks for scope %s", raw.SourceName, len(chunks), raw.OrgScope)
	return chunks, nil
}

// IngestBatch ingests documents one by one, isolating failures. The
// report lists each failed document with its error; documents that
// succeed are stored regardless of what happens to their neighbours.
func (s *IngestPipeline) IngestBatch(ctx context.Context, raws []domain.RawDocument) (*domain.IngestReport, error) {
	report := &domain.IngestReport{}
	for i := range raws {
		raw := raws[i]
		chunks, err := s.Ingest(ctx, &raw)
		if err != nil {
			logger.Error("Ingesting %s failed: %v", raw.SourceName, err)
			report.Failed = append(report.Failed, domain.DocumentFailure{URI: raw.URI, Err: err})
			continue
		}
		report.Succeeded = append(report.Succeeded, raw.URI)
		report.ChunksAdded += len(chunks)
	}
	return report, nil
}
