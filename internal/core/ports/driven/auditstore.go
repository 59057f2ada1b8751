package driven

import (
	"context"

	"github.com/verity-labs/verity/internal/core/domain"
)

// AuditStore persists audit entries. The store only appends; there is no
// update or delete. Hash computation and write serialization are owned by
// the audit service - the store must faithfully preserve write order.
type AuditStore interface {
	// Append stores a sealed entry at the tail of the chain.
	Append(ctx context.Context, entry domain.AuditEntry) error

	// Last returns the most recently appended entry, or
	// domain.ErrNotFound when the chain is empty.
	Last(ctx context.Context) (*domain.AuditEntry, error)

	// List returns all entries in chain (write) order.
	List(ctx context.Context) ([]domain.AuditEntry, error)
}
