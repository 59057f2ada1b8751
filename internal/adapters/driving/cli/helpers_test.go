package cli

import (
	"context"

	"github.com/verity-labs/verity/internal/core/domain"
)

// stubIngestService returns canned ingest results.
type stubIngestService struct {
	chunks []domain.Chunk
	report *domain.IngestReport
	err    error
}

func (s *stubIngestService) Ingest(_ context.Context, _ *domain.RawDocument) ([]domain.Chunk, error) {
	return s.chunks, s.err
}

func (s *stubIngestService) IngestBatch(_ context.Context, _ []domain.RawDocument) (*domain.IngestReport, error) {
	return s.report, s.err
}

// stubRetrievalService returns canned evidence items.
type stubRetrievalService struct {
	results []domain.EvidenceItem
	err     error
}

func (s *stubRetrievalService) Search(_ context.Context, _, _ string, _ int) ([]domain.EvidenceItem, error) {
	return s.results, s.err
}

// stubAnswerService returns a canned answer.
type stubAnswerService struct {
	answer *domain.Answer
	err    error
}

func (s *stubAnswerService) Answer(_ context.Context, _, _, _ string) (*domain.Answer, error) {
	return s.answer, s.err
}

// stubAuditService returns canned audit results.
type stubAuditService struct {
	report  *domain.ValidityReport
	entries []domain.AuditEntry
	err     error
}

func (s *stubAuditService) Append(_ context.Context, actor, action string, details map[string]any) (*domain.AuditEntry, error) {
	return &domain.AuditEntry{Actor: actor, Action: action, Details: details}, s.err
}

func (s *stubAuditService) Verify(_ context.Context) (*domain.ValidityReport, error) {
	return s.report, s.err
}

func (s *stubAuditService) Recent(_ context.Context, _ []string, _ int) ([]domain.AuditEntry, error) {
	return s.entries, s.err
}

// setupTestServices injects stub services and returns a cleanup that
// restores the previous ones.
func setupTestServices() func() {
	oldIngest := ingestService
	oldAnswer := answerService
	oldRetrieval := retrievalService
	oldAudit := auditService

	ingestService = &stubIngestService{
		chunks: []domain.Chunk{{ID: "chunk-1"}},
		report: &domain.IngestReport{Succeeded: []string{"doc.txt"}, ChunksAdded: 1},
	}
	retrievalService = &stubRetrievalService{
		results: []domain.EvidenceItem{
			{Kind: domain.EvidenceDocument, Text: "Refunds take 30 days.", Source: "Employee Handbook", Score: 2},
		},
	}
	answerService = &stubAnswerService{
		answer: &domain.Answer{
			Response: "The refund window is 30 days.",
			Sources:  []domain.SourceRef{{Name: "Employee Handbook"}},
			Governance: domain.GovernanceReport{
				Scores: domain.GovernanceScores{Confidence: 90, Uncertainty: 5, Risk: 5},
			},
			Model: "mock-model",
		},
	}
	auditService = &stubAuditService{
		report: &domain.ValidityReport{Valid: true, Entries: 2},
	}

	return func() {
		ingestService = oldIngest
		answerService = oldAnswer
		retrievalService = oldRetrieval
		auditService = oldAudit
	}
}
