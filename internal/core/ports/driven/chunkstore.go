package driven

import (
	"context"

	"github.com/verity-labs/verity/internal/core/domain"
)

// ChunkStore persists text chunks. The store is append-only: chunks are
// never mutated after being written, so concurrent readers never observe
// torn records. Re-ingesting a document appends new chunks alongside the
// old ones; deduplication is out of scope.
type ChunkStore interface {
	// AppendChunks appends chunks in the given order.
	AppendChunks(ctx context.Context, chunks []domain.Chunk) error

	// ListByScope returns all chunks for an organization scope in
	// ingestion order (the retrieval tie-break order).
	ListByScope(ctx context.Context, orgScope string) ([]domain.Chunk, error)
}
