// Package memory provides in-memory store implementations, used by
// tests and by runs that don't need persistence.
package memory

import (
	"context"
	"sync"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore.
// Chunks are kept per scope in append order, which is the retrieval
// tie-break order.
type ChunkStore struct {
	mu      sync.RWMutex
	byScope map[string][]domain.Chunk
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		byScope: make(map[string][]domain.Chunk),
	}
}

// AppendChunks appends chunks in the given order.
func (s *ChunkStore) AppendChunks(_ context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, chunk := range chunks {
		s.byScope[chunk.OrgScope] = append(s.byScope[chunk.OrgScope], chunk)
	}
	return nil
}

// ListByScope returns all chunks for a scope in ingestion order.
func (s *ChunkStore) ListByScope(_ context.Context, orgScope string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.byScope[orgScope]
	out := make([]domain.Chunk, len(stored))
	copy(out, stored)
	return out, nil
}
