package driving

import (
	"context"

	"github.com/verity-labs/verity/internal/core/domain"
)

// AnswerService is the top-level query pipeline: it assembles evidence,
// invokes the primary model, validates its structured output, attaches a
// governance report and records the exchange in the audit log.
type AnswerService interface {
	// Answer processes one query for a requester within an organization
	// scope. Callers see either a complete answer object or a single
	// error (domain.ErrUpstreamModel when the primary model fails);
	// never a partial answer.
	Answer(ctx context.Context, query, requester, orgScope string) (*domain.Answer, error)
}

// GovernanceService evaluates a produced answer against its evidence.
type GovernanceService interface {
	// Evaluate returns a governance report for the answer. Best-effort:
	// on any evaluator failure it returns the documented fallback
	// report and no error.
	Evaluate(ctx context.Context, query string, evidence *domain.EvidenceBundle, answerText string) *domain.GovernanceReport
}
