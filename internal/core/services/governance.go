package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
	"github.com/verity-labs/verity/internal/core/ports/driving"
	"github.com/verity-labs/verity/internal/logger"
)

// Ensure GovernanceEvaluator implements the interface.
var _ driving.GovernanceService = (*GovernanceEvaluator)(nil)

// Fallback report constants. Governance is advisory: when the evaluator
// is unreachable or produces garbage, the answer still ships with these
// conservative defaults instead of failing the request.
const (
	fallbackConfidence  = 85
	fallbackUncertainty = 15
	fallbackRisk        = 10
)

const judgeSystemPrompt = `You are a governance evaluator. You receive a user query, the evidence that was available, and the answer that was produced. Judge the answer strictly against the evidence.

Respond with a single JSON object and nothing else:
{
  "hallucination": <true if the answer makes claims the evidence does not support>,
  "contradiction": <true if the answer contradicts the evidence>,
  "scores": {"confidence": <0-100>, "uncertainty": <0-100>, "risk": <0-100>},
  "bias_analysis": {"prompt_bias": "<assessment>", "output_bias": "<assessment>", "fairness": "<assessment>"},
  "reasoning_trace": "<brief explanation of your judgement>"
}`

// GovernanceEvaluator runs an LLM-as-judge pass over a produced answer.
// It is best-effort by contract: Evaluate never returns an error, only a
// verdict or the fallback report.
type GovernanceEvaluator struct {
	llm     driven.LLMService
	timeout time.Duration
}

// GovernanceOption configures a GovernanceEvaluator.
type GovernanceOption func(*GovernanceEvaluator)

// WithGovernanceTimeout bounds each evaluator call.
func WithGovernanceTimeout(d time.Duration) GovernanceOption {
	return func(g *GovernanceEvaluator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// NewGovernanceEvaluator creates an evaluator over the given judge model.
func NewGovernanceEvaluator(llm driven.LLMService, opts ...GovernanceOption) *GovernanceEvaluator {
	g := &GovernanceEvaluator{
		llm:     llm,
		timeout: domain.DefaultGovernanceTime,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate judges the answer against its evidence. Any failure along
// the way degrades to the fallback report.
func (g *GovernanceEvaluator) Evaluate(ctx context.Context, query string, evidence *domain.EvidenceBundle, answerText string) *domain.GovernanceReport {
	if g.llm == nil {
		return FallbackGovernanceReport("no evaluator model configured")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	messages := []driven.ChatMessage{
		{Role: "system", Content: judgeSystemPrompt},
		{Role: "user", Content: judgeUserPrompt(query, evidence, answerText)},
	}

	raw, err := g.llm.Chat(ctx, messages, driven.ChatOptions{JSONResponse: true})
	if err != nil {
		logger.Warn("Governance evaluation failed, using fallback: %v", err)
		return FallbackGovernanceReport(fmt.Sprintf("evaluator call failed: %v", err))
	}

	var report domain.GovernanceReport
	if !extractJSON(raw, &report) {
		logger.Warn("Governance evaluator returned unparseable output, using fallback")
		return FallbackGovernanceReport("evaluator output was not valid JSON")
	}

	clampScores(&report.Scores)
	return &report
}

// FallbackGovernanceReport returns the documented degraded-mode report.
// The values are fixed constants so degraded behaviour is testable.
func FallbackGovernanceReport(reason string) *domain.GovernanceReport {
	return &domain.GovernanceReport{
		Hallucination: false,
		Contradiction: false,
		Scores: domain.GovernanceScores{
			Confidence:  fallbackConfidence,
			Uncertainty: fallbackUncertainty,
			Risk:        fallbackRisk,
		},
		Bias: domain.BiasAnalysis{
			PromptBias: "not evaluated",
			OutputBias: "not evaluated",
			Fairness:   "not evaluated",
		},
		ReasoningTrace: "Governance evaluation unavailable: " + reason,
		Fallback:       true,
	}
}

// judgeUserPrompt renders the query, the evidence and the answer for
// the judge model.
func judgeUserPrompt(query string, evidence *domain.EvidenceBundle, answerText string) string {
	var b strings.Builder
	b.WriteString("QUERY:\n")
	b.WriteString(query)
	b.WriteString("\n\nEVIDENCE:\n")
	if evidence == nil || evidence.Empty() {
		b.WriteString("(no evidence was available)\n")
	} else {
		for i, item := range evidence.Items() {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, renderEvidenceItem(item))
		}
	}
	b.WriteString("\nANSWER:\n")
	b.WriteString(answerText)
	return b.String()
}

// renderEvidenceItem flattens one evidence item to a prompt line.
func renderEvidenceItem(item domain.EvidenceItem) string {
	if item.Kind == domain.EvidenceWeb {
		return fmt.Sprintf("(web) %s - %s %s", item.Title, item.Snippet, item.URL)
	}
	return fmt.Sprintf("(document: %s) %s", item.Source, item.Text)
}

// clampScores forces scores into the 0-100 range.
func clampScores(s *domain.GovernanceScores) {
	s.Confidence = clamp(s.Confidence)
	s.Uncertainty = clamp(s.Uncertainty)
	s.Risk = clamp(s.Risk)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
