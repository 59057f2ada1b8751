package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
	"github.com/verity-labs/verity/internal/core/ports/driving"
	"github.com/verity-labs/verity/internal/logger"
)

// Ensure LexicalRetrieval implements the interface.
var _ driving.RetrievalService = (*LexicalRetrieval)(nil)

// LexicalRetrieval scores stored chunks against a query by substring
// match. No index is maintained; every search is a linear scan over the
// requesting organisation's chunks, which keeps ingestion cheap and is
// fine at the corpus sizes this serves.
type LexicalRetrieval struct {
	chunks driven.ChunkStore
	topK   int
}

// LexicalRetrievalOption configures a LexicalRetrieval.
type LexicalRetrievalOption func(*LexicalRetrieval)

// WithTopK overrides the default result count.
func WithTopK(k int) LexicalRetrievalOption {
	return func(r *LexicalRetrieval) {
		if k > 0 {
			r.topK = k
		}
	}
}

// NewLexicalRetrieval creates a retrieval engine over the given store.
func NewLexicalRetrieval(chunks driven.ChunkStore, opts ...LexicalRetrievalOption) *LexicalRetrieval {
	r := &LexicalRetrieval{
		chunks: chunks,
		topK:   domain.DefaultTopK,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// scoredChunk pairs a chunk with its match score and its position in
// ingestion order, used for stable tie-breaking.
type scoredChunk struct {
	chunk domain.Chunk
	score int
	order int
}

// Search returns the k best-matching chunks as document evidence items,
// restricted to the given organisation scope. A non-positive k falls
// back to the engine's configured default. Queries whose tokens are all
// too short to be meaningful return no results.
func (r *LexicalRetrieval) Search(ctx context.Context, query, orgScope string, k int) ([]domain.EvidenceItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	if orgScope == "" {
		return nil, fmt.Errorf("%w: org scope is required", domain.ErrInvalidInput)
	}
	if k <= 0 {
		k = r.topK
	}

	tokens := queryTokens(query)
	if len(tokens) == 0 {
		logger.Debug("Query %q produced no usable tokens", query)
		return []domain.EvidenceItem{}, nil
	}

	chunks, err := r.chunks.ListByScope(ctx, orgScope)
	if err != nil {
		return nil, fmt.Errorf("listing chunks for scope %q: %w", orgScope, err)
	}

	scored := make([]scoredChunk, 0, len(chunks))
	for i, chunk := range chunks {
		score := matchScore(chunk.Text, tokens)
		if score == 0 {
			continue
		}
		scored = append(scored, scoredChunk{chunk: chunk, score: score, order: i})
	}

	// Higher scores first; equal scores keep ingestion order.
	sort.SliceStable(scored, func(a, b int) bool {
		if scored[a].score != scored[b].score {
			return scored[a].score > scored[b].score
		}
		return scored[a].order < scored[b].order
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	result := make([]domain.EvidenceItem, len(scored))
	for i, sc := range scored {
		result[i] = domain.EvidenceItem{
			Kind:   domain.EvidenceDocument,
			Text:   sc.chunk.Text,
			Source: sc.chunk.SourceName,
			Score:  float64(sc.score),
		}
	}
	logger.Debug("Search for %q matched %d of %d chunks in scope %s", query, len(result), len(chunks), orgScope)
	return result, nil
}

// queryTokens splits the query on whitespace, lowercases it and drops
// short tokens that would match almost everything.
func queryTokens(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		if len(field) <= 3 || seen[field] {
			continue
		}
		seen[field] = true
		tokens = append(tokens, field)
	}
	return tokens
}

// matchScore counts how many distinct query tokens appear in the chunk
// text. Each token contributes at most one point regardless of how
// often it occurs.
func matchScore(text string, tokens []string) int {
	lowered := strings.ToLower(text)
	score := 0
	for _, token := range tokens {
		if strings.Contains(lowered, token) {
			score++
		}
	}
	return score
}
