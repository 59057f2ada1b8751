package driving

import (
	"context"

	"github.com/verity-labs/verity/internal/core/domain"
)

// RetrievalService ranks stored chunks against a query.
type RetrievalService interface {
	// Search returns up to k document evidence items for the query,
	// restricted to the given organization scope, ordered by score
	// descending with ties broken by ingestion order. Deterministic
	// for an unchanged chunk store.
	Search(ctx context.Context, query, orgScope string, k int) ([]domain.EvidenceItem, error)
}
