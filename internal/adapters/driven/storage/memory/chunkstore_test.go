package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-labs/verity/internal/core/domain"
)

func TestChunkStore_AppendAndList(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	chunks := []domain.Chunk{
		{ID: "a", Text: "first", OrgScope: "acme"},
		{ID: "b", Text: "second", OrgScope: "acme"},
	}
	require.NoError(t, store.AppendChunks(ctx, chunks))

	got, err := store.ListByScope(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestChunkStore_ScopeIsolation(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	require.NoError(t, store.AppendChunks(ctx, []domain.Chunk{
		{ID: "a", OrgScope: "acme"},
		{ID: "g", OrgScope: "globex"},
	}))

	acme, err := store.ListByScope(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, acme, 1)
	assert.Equal(t, "a", acme[0].ID)

	empty, err := store.ListByScope(ctx, "initech")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestChunkStore_PreservesIngestionOrderAcrossBatches(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.AppendChunks(ctx, []domain.Chunk{
			{ID: fmt.Sprintf("chunk-%d", i), OrgScope: "acme"},
		}))
	}

	got, err := store.ListByScope(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, chunk := range got {
		assert.Equal(t, fmt.Sprintf("chunk-%d", i), chunk.ID)
	}
}

func TestChunkStore_ListReturnsCopy(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	require.NoError(t, store.AppendChunks(ctx, []domain.Chunk{{ID: "a", Text: "original", OrgScope: "acme"}}))

	got, err := store.ListByScope(ctx, "acme")
	require.NoError(t, err)
	got[0].Text = "mutated"

	again, err := store.ListByScope(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Text)
}

func TestChunkStore_ConcurrentAppends(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.AppendChunks(ctx, []domain.Chunk{
				{ID: fmt.Sprintf("c-%d", i), OrgScope: "acme"},
			}))
		}(i)
	}
	wg.Wait()

	got, err := store.ListByScope(ctx, "acme")
	require.NoError(t, err)
	assert.Len(t, got, n)
}
