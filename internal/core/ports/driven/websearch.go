package driven

import (
	"context"

	"github.com/verity-labs/verity/internal/core/domain"
)

// WebSearchService queries an external search provider and normalises
// results into web evidence items.
//
// Web evidence is optional context, not a correctness requirement:
// implementations return an empty slice on provider error or empty
// result set rather than propagating the failure, and must bound each
// request with a timeout.
type WebSearchService interface {
	// Search returns up to the configured number of web evidence items.
	Search(ctx context.Context, query string) ([]domain.EvidenceItem, error)
}
