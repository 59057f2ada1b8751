package driving

import (
	"context"

	"github.com/verity-labs/verity/internal/core/domain"
)

// IngestService converts raw documents into stored chunks.
// Ingestion runs independently of query time - the watcher or CLI feeds
// documents in, retrieval reads the resulting chunks later.
type IngestService interface {
	// Ingest parses one document and appends its chunks to the store.
	// Fails with domain.ErrUnsupportedFormat for unknown declared types
	// and domain.ErrParseFailure for corrupt input, producing no
	// partial output in either case.
	Ingest(ctx context.Context, raw *domain.RawDocument) ([]domain.Chunk, error)

	// IngestBatch ingests multiple documents, isolating per-document
	// failures. The report lists each failure individually; one corrupt
	// document never aborts the batch.
	IngestBatch(ctx context.Context, raws []domain.RawDocument) (*domain.IngestReport, error)
}
