package memory

import (
	"context"
	"sync"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
)

// Ensure AuditStore implements the interface.
var _ driven.AuditStore = (*AuditStore)(nil)

// AuditStore is an in-memory implementation of driven.AuditStore.
// Entries are held in chain order.
type AuditStore struct {
	mu      sync.RWMutex
	entries []domain.AuditEntry
}

// NewAuditStore creates a new in-memory audit store.
func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

// Append adds an entry at the tail.
func (s *AuditStore) Append(_ context.Context, entry domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// Last returns the tail entry, or domain.ErrNotFound when empty.
func (s *AuditStore) Last(_ context.Context) (*domain.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return nil, domain.ErrNotFound
	}
	last := s.entries[len(s.entries)-1]
	return &last, nil
}

// List returns all entries in chain order.
func (s *AuditStore) List(_ context.Context) ([]domain.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AuditEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}
