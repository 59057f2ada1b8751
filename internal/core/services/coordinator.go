package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
	"github.com/verity-labs/verity/internal/core/ports/driving"
	"github.com/verity-labs/verity/internal/logger"
)

// Ensure Coordinator implements the interface.
var _ driving.AnswerService = (*Coordinator)(nil)

// pipelineState names a stage of the answer pipeline. Used for logging
// and for reasoning about where a request failed.
type pipelineState string

const (
	stateInit       pipelineState = "INIT"
	stateRetrieving pipelineState = "RETRIEVING"
	stateComposing  pipelineState = "COMPOSING"
	stateModelCall  pipelineState = "MODEL_CALL"
	stateValidating pipelineState = "VALIDATING"
	stateGovernance pipelineState = "GOVERNANCE_EVAL"
	stateLogging    pipelineState = "LOGGING"
	stateDone       pipelineState = "DONE"
	stateError      pipelineState = "ERROR"
)

const defaultSystemPrompt = `You answer questions using only the evidence provided. If the evidence does not cover the question, say so rather than guessing.

Respond with a single JSON object and nothing else:
{"response": "<your answer>", "sources": ["<name of each evidence item you relied on>"]}`

// modelAnswer is the wire shape the primary model is asked to produce.
type modelAnswer struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources"`
}

// Coordinator drives one query through retrieval, evidence composition,
// the primary model call, validation, governance and audit logging.
//
// Failure handling is deliberately asymmetric: web search and
// governance degrade silently (empty evidence, fallback report), the
// primary model call is the single hard failure point, and an audit
// failure after a produced answer is reported but never retracts the
// answer.
type Coordinator struct {
	retrieval  driving.RetrievalService
	web        driven.WebSearchService
	llm        driven.LLMService
	governance driving.GovernanceService
	audit      driving.AuditService
	settings   domain.Settings
}

// NewCoordinator wires the answer pipeline. web and governance may be
// nil; the pipeline then runs without web evidence or with the fallback
// governance report.
func NewCoordinator(
	retrieval driving.RetrievalService,
	web driven.WebSearchService,
	llm driven.LLMService,
	governance driving.GovernanceService,
	audit driving.AuditService,
	settings domain.Settings,
) *Coordinator {
	return &Coordinator{
		retrieval:  retrieval,
		web:        web,
		llm:        llm,
		governance: governance,
		audit:      audit,
		settings:   settings,
	}
}

// Answer processes one query end to end.
func (c *Coordinator) Answer(ctx context.Context, query, requester, orgScope string) (*domain.Answer, error) {
	state := stateInit
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	if requester == "" || orgScope == "" {
		return nil, fmt.Errorf("%w: requester and org scope are required", domain.ErrInvalidInput)
	}
	if c.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	state = c.transition(state, stateRetrieving)
	evidence := c.gatherEvidence(ctx, query, orgScope)

	state = c.transition(state, stateComposing)
	evidence = capEvidence(evidence, c.maxEvidenceChars())
	messages := c.composeMessages(query, evidence)

	state = c.transition(state, stateModelCall)
	raw, err := c.llm.Chat(ctx, messages, driven.ChatOptions{JSONResponse: true})
	if err != nil {
		c.transition(state, stateError)
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamModel, err)
	}

	state = c.transition(state, stateValidating)
	var parsed modelAnswer
	if !extractJSON(raw, &parsed) || strings.TrimSpace(parsed.Response) == "" {
		c.transition(state, stateError)
		return nil, fmt.Errorf("%w: model output was not a valid answer object", domain.ErrUpstreamModel)
	}

	answer := &domain.Answer{
		Response: parsed.Response,
		Sources:  buildSources(parsed.Sources, evidence),
		Model:    c.llm.ModelName(),
	}

	if c.settings.Governance.Enabled && c.governance != nil {
		state = c.transition(state, stateGovernance)
		answer.Governance = *c.governance.Evaluate(ctx, query, evidence, answer.Response)
	} else {
		answer.Governance = *FallbackGovernanceReport("governance evaluation disabled")
	}

	state = c.transition(state, stateLogging)
	c.recordExchange(ctx, query, requester, orgScope, answer, evidence)

	c.transition(state, stateDone)
	return answer, nil
}

// transition logs a state change and returns the new state.
func (c *Coordinator) transition(from, to pipelineState) pipelineState {
	logger.Debug("Pipeline %s -> %s", from, to)
	return to
}

// gatherEvidence fans out to document retrieval and web search and
// waits for both. Neither branch can fail the request: errors degrade
// to empty slices so the model still gets whatever evidence exists.
func (c *Coordinator) gatherEvidence(ctx context.Context, query, orgScope string) *domain.EvidenceBundle {
	bundle := &domain.EvidenceBundle{}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		items, err := c.retrieval.Search(ctx, query, orgScope, c.settings.Retrieval.TopK)
		if err != nil {
			logger.Warn("Document retrieval failed, continuing without document evidence: %v", err)
			return
		}
		bundle.Documents = items
	}()

	if c.settings.WebSearch.Enabled && c.web != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results, err := c.web.Search(ctx, query)
			if err != nil {
				logger.Warn("Web search failed, continuing without web evidence: %v", err)
				return
			}
			bundle.Web = results
		}()
	}

	wg.Wait()
	logger.Debug("Evidence gathered: %d document, %d web", len(bundle.Documents), len(bundle.Web))
	return bundle
}

// capEvidence drops trailing evidence once the running character total
// exceeds the cap. Document items are counted first, so web evidence is
// the first to go when the bundle is too large.
func capEvidence(bundle *domain.EvidenceBundle, maxChars int) *domain.EvidenceBundle {
	if maxChars <= 0 {
		return bundle
	}

	capped := &domain.EvidenceBundle{}
	total := 0
	for _, item := range bundle.Documents {
		size := len(item.Text) + len(item.Source)
		if total+size > maxChars {
			return capped
		}
		total += size
		capped.Documents = append(capped.Documents, item)
	}
	for _, item := range bundle.Web {
		size := len(item.Title) + len(item.Snippet) + len(item.URL)
		if total+size > maxChars {
			return capped
		}
		total += size
		capped.Web = append(capped.Web, item)
	}
	return capped
}

// composeMessages builds the primary model conversation.
func (c *Coordinator) composeMessages(query string, evidence *domain.EvidenceBundle) []driven.ChatMessage {
	system := defaultSystemPrompt
	if c.settings.SystemPrompt != "" {
		system = c.settings.SystemPrompt + "\n\n" + defaultSystemPrompt
	}

	var b strings.Builder
	b.WriteString("EVIDENCE:\n")
	if evidence.Empty() {
		b.WriteString("(no evidence was found for this query)\n")
	} else {
		for i, item := range evidence.Items() {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, renderEvidenceItem(item))
		}
	}
	b.WriteString("\nQUESTION:\n")
	b.WriteString(query)

	return []driven.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: b.String()},
	}
}

// buildSources turns the model's cited source names into SourceRefs.
// When the model cites nothing, sources are synthesized from the
// evidence deterministically: web results by title first, then document
// chunks by source name, duplicates removed.
func buildSources(cited []string, evidence *domain.EvidenceBundle) []domain.SourceRef {
	names := make([]string, 0, len(cited))
	for _, name := range cited {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		for _, item := range evidence.Web {
			name := item.Title
			if name == "" {
				name = item.URL
			}
			names = append(names, name)
		}
		for _, item := range evidence.Documents {
			names = append(names, item.Source)
		}
	}

	seen := make(map[string]bool, len(names))
	refs := make([]domain.SourceRef, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		refs = append(refs, domain.SourceRef{Name: name})
	}
	return refs
}

// recordExchange appends the "query" and "answer" audit entries. An
// audit failure at this point is reported and swallowed: the answer has
// already been produced and is never retracted.
func (c *Coordinator) recordExchange(ctx context.Context, query, requester, orgScope string, answer *domain.Answer, evidence *domain.EvidenceBundle) {
	if c.audit == nil {
		return
	}

	_, err := c.audit.Append(ctx, requester, "query", map[string]any{
		"query":             query,
		"org_scope":         orgScope,
		"document_evidence": len(evidence.Documents),
		"web_evidence":      len(evidence.Web),
	})
	if err != nil {
		logger.Error("Recording query audit entry failed: %v", err)
	}

	_, err = c.audit.Append(ctx, requester, "answer", map[string]any{
		"model":      answer.Model,
		"sources":    len(answer.Sources),
		"fallback":   answer.Governance.Fallback,
		"confidence": answer.Governance.Scores.Confidence,
	})
	if err != nil {
		logger.Error("Recording answer audit entry failed: %v", err)
	}
}

// maxEvidenceChars returns the configured evidence cap or the default.
func (c *Coordinator) maxEvidenceChars() int {
	if c.settings.Retrieval.MaxEvidenceChars > 0 {
		return c.settings.Retrieval.MaxEvidenceChars
	}
	return domain.DefaultMaxEvidenceChars
}
