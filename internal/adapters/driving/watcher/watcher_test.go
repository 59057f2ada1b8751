package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-labs/verity/internal/core/domain"
)

// mockIngest records ingested documents.
type mockIngest struct {
	mu   sync.Mutex
	raws []domain.RawDocument
}

func (m *mockIngest) Ingest(_ context.Context, raw *domain.RawDocument) ([]domain.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raws = append(m.raws, *raw)
	return []domain.Chunk{{ID: "c1"}}, nil
}

func (m *mockIngest) IngestBatch(ctx context.Context, raws []domain.RawDocument) (*domain.IngestReport, error) {
	report := &domain.IngestReport{}
	for i := range raws {
		if _, err := m.Ingest(ctx, &raws[i]); err == nil {
			report.Succeeded = append(report.Succeeded, raws[i].URI)
			report.ChunksAdded++
		}
	}
	return report, nil
}

func (m *mockIngest) ingested() []domain.RawDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.RawDocument, len(m.raws))
	copy(out, m.raws)
	return out
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, "acme")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = New(&mockIngest{}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestPath_File(t *testing.T) {
	ingest := &mockIngest{}
	w, err := New(ingest, "acme")
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("refund policy notes"), 0600))

	require.NoError(t, w.IngestPath(context.Background(), path))

	raws := ingest.ingested()
	require.Len(t, raws, 1)
	assert.Equal(t, "txt", raws[0].DeclaredType)
	assert.Equal(t, "notes.txt", raws[0].SourceName)
	assert.Equal(t, "acme", raws[0].OrgScope)
	assert.Equal(t, []byte("refund policy notes"), raws[0].Content)
}

func TestIngestPath_SkipsDotfilesAndDirectories(t *testing.T) {
	ingest := &mockIngest{}
	w, err := New(ingest, "acme")
	require.NoError(t, err)

	dir := t.TempDir()
	hidden := filepath.Join(dir, ".swapfile")
	require.NoError(t, os.WriteFile(hidden, []byte("x"), 0600))

	require.NoError(t, w.IngestPath(context.Background(), hidden))
	require.NoError(t, w.IngestPath(context.Background(), dir))
	assert.Empty(t, ingest.ingested())
}

func TestIngestPath_MissingFile(t *testing.T) {
	w, err := New(&mockIngest{}, "acme")
	require.NoError(t, err)

	err = w.IngestPath(context.Background(), filepath.Join(t.TempDir(), "gone.txt"))
	assert.Error(t, err)
}

func TestRun_IngestsCreatedFiles(t *testing.T) {
	ingest := &mockIngest{}
	w, err := New(ingest, "acme")
	require.NoError(t, err)

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, dir) }()

	// Give the watcher a moment to register before creating the file.
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(dir, "dropped.txt")
	require.NoError(t, os.WriteFile(path, []byte("dropped in"), 0600))

	require.Eventually(t, func() bool {
		return len(ingest.ingested()) >= 1
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRun_MissingDirectory(t *testing.T) {
	w, err := New(&mockIngest{}, "acme")
	require.NoError(t, err)

	err = w.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
