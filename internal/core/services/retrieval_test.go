package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-labs/verity/internal/core/domain"
)

// mockChunkStore is an in-memory ChunkStore for tests. Chunks are kept
// in append order per scope.
type mockChunkStore struct {
	byScope map[string][]domain.Chunk
	listErr error
}

func newMockChunkStore() *mockChunkStore {
	return &mockChunkStore{byScope: make(map[string][]domain.Chunk)}
}

func (m *mockChunkStore) AppendChunks(_ context.Context, chunks []domain.Chunk) error {
	for _, c := range chunks {
		m.byScope[c.OrgScope] = append(m.byScope[c.OrgScope], c)
	}
	return nil
}

func (m *mockChunkStore) ListByScope(_ context.Context, orgScope string) ([]domain.Chunk, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.Chunk, len(m.byScope[orgScope]))
	copy(out, m.byScope[orgScope])
	return out, nil
}

func seedChunks(t *testing.T, store *mockChunkStore, scope string, texts ...string) {
	t.Helper()
	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.Chunk{
			ID:         fmt.Sprintf("chunk-%s-%d", scope, i),
			Text:       text,
			SourceName: "handbook",
			OrgScope:   scope,
		}
	}
	require.NoError(t, store.AppendChunks(context.Background(), chunks))
}

func TestLexicalRetrieval_ScoresByDistinctTokens(t *testing.T) {
	store := newMockChunkStore()
	seedChunks(t, store, "acme",
		"Our refund policy allows returns within 30 days.",
		"The refund desk is open on weekdays.",
		"Lunch menu for the cafeteria.",
	)
	r := NewLexicalRetrieval(store)

	results, err := r.Search(context.Background(), "refund policy", "acme", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Both tokens match the first chunk, only "refund" matches the second.
	assert.Contains(t, results[0].Text, "refund policy")
	assert.Contains(t, results[1].Text, "refund desk")

	// Results are document evidence items carrying their match score.
	assert.Equal(t, domain.EvidenceDocument, results[0].Kind)
	assert.Equal(t, "handbook", results[0].Source)
	assert.Equal(t, 2.0, results[0].Score)
	assert.Equal(t, 1.0, results[1].Score)
}

func TestLexicalRetrieval_DropsZeroScores(t *testing.T) {
	store := newMockChunkStore()
	seedChunks(t, store, "acme", "Lunch menu for the cafeteria.")
	r := NewLexicalRetrieval(store)

	results, err := r.Search(context.Background(), "refund policy", "acme", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLexicalRetrieval_IgnoresShortTokens(t *testing.T) {
	store := newMockChunkStore()
	seedChunks(t, store, "acme", "The cat sat on the mat.")
	r := NewLexicalRetrieval(store)

	// Every query token is 3 characters or fewer.
	results, err := r.Search(context.Background(), "the cat on a mat", "acme", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLexicalRetrieval_CaseInsensitive(t *testing.T) {
	store := newMockChunkStore()
	seedChunks(t, store, "acme", "REFUND requests go to finance.")
	r := NewLexicalRetrieval(store)

	results, err := r.Search(context.Background(), "Refund", "acme", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestLexicalRetrieval_SubstringMatch(t *testing.T) {
	store := newMockChunkStore()
	seedChunks(t, store, "acme", "All refunds are processed monthly.")
	r := NewLexicalRetrieval(store)

	// "refund" matches inside "refunds".
	results, err := r.Search(context.Background(), "refund", "acme", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestLexicalRetrieval_TiesKeepIngestionOrder(t *testing.T) {
	store := newMockChunkStore()
	seedChunks(t, store, "acme",
		"refund note one",
		"refund note two",
		"refund note three",
	)
	r := NewLexicalRetrieval(store)

	results, err := r.Search(context.Background(), "refund", "acme", 5)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "refund note one", results[0].Text)
	assert.Equal(t, "refund note two", results[1].Text)
	assert.Equal(t, "refund note three", results[2].Text)
}

func TestLexicalRetrieval_TruncatesToK(t *testing.T) {
	store := newMockChunkStore()
	seedChunks(t, store, "acme",
		"refund a", "refund b", "refund c", "refund d",
	)
	r := NewLexicalRetrieval(store)

	results, err := r.Search(context.Background(), "refund", "acme", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "refund a", results[0].Text)
	assert.Equal(t, "refund b", results[1].Text)
}

func TestLexicalRetrieval_DefaultKWhenNonPositive(t *testing.T) {
	store := newMockChunkStore()
	texts := make([]string, 8)
	for i := range texts {
		texts[i] = fmt.Sprintf("refund entry %d", i)
	}
	seedChunks(t, store, "acme", texts...)
	r := NewLexicalRetrieval(store)

	results, err := r.Search(context.Background(), "refund", "acme", 0)
	require.NoError(t, err)
	assert.Len(t, results, domain.DefaultTopK)
}

func TestLexicalRetrieval_ScopeIsolation(t *testing.T) {
	store := newMockChunkStore()
	seedChunks(t, store, "acme", "refund policy for acme")
	seedChunks(t, store, "globex", "refund policy for globex")
	r := NewLexicalRetrieval(store)

	results, err := r.Search(context.Background(), "refund", "acme", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "refund policy for acme", results[0].Text)
}

func TestLexicalRetrieval_Deterministic(t *testing.T) {
	store := newMockChunkStore()
	seedChunks(t, store, "acme",
		"refund policy details",
		"refund desk hours",
		"policy archive",
	)
	r := NewLexicalRetrieval(store)

	first, err := r.Search(context.Background(), "refund policy", "acme", 5)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Search(context.Background(), "refund policy", "acme", 5)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestLexicalRetrieval_EmptyQuery(t *testing.T) {
	r := NewLexicalRetrieval(newMockChunkStore())

	_, err := r.Search(context.Background(), "   ", "acme", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLexicalRetrieval_MissingScope(t *testing.T) {
	r := NewLexicalRetrieval(newMockChunkStore())

	_, err := r.Search(context.Background(), "refund", "", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLexicalRetrieval_StoreFailure(t *testing.T) {
	store := newMockChunkStore()
	store.listErr = errors.New("backend offline")
	r := NewLexicalRetrieval(store)

	_, err := r.Search(context.Background(), "refund", "acme", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend offline")
}

func TestWithTopK(t *testing.T) {
	store := newMockChunkStore()
	seedChunks(t, store, "acme", "refund a", "refund b", "refund c")
	r := NewLexicalRetrieval(store, WithTopK(1))

	results, err := r.Search(context.Background(), "refund", "acme", 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
