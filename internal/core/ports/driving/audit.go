package driving

import (
	"context"

	"github.com/verity-labs/verity/internal/core/domain"
)

// AuditService owns the hash chain. No other component may construct an
// entry hash or back-date a previous hash.
type AuditService interface {
	// Append commits a new entry at the tail of the chain. Concurrent
	// callers are strictly ordered; each entry's PreviousHash
	// references the true immediate predecessor.
	Append(ctx context.Context, actor, action string, details map[string]any) (*domain.AuditEntry, error)

	// Verify recomputes every entry's hash in chain order and checks
	// linkage. It reports the first offending sequence position and
	// stops; it does not attempt repair.
	Verify(ctx context.Context) (*domain.ValidityReport, error)

	// Recent returns the last n entries, newest first, restricted to
	// the given actor identities (the caller and its subordinates).
	// An empty actor set returns entries for all actors.
	Recent(ctx context.Context, actors []string, n int) ([]domain.AuditEntry, error)
}
