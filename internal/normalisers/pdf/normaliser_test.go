package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

func TestNew(t *testing.T) {
	n := New()
	require.NotNil(t, n)
	assert.IsType(t, &Normaliser{}, n)
}

func TestSupportedTypes(t *testing.T) {
	n := New()
	assert.Equal(t, []string{"pdf"}, n.SupportedTypes())
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}

func TestNormalise_NilDocument(t *testing.T) {
	n := New()

	result, err := n.Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_WithMockRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("Quarterly Report\n\nRevenue grew 12%.\n")}
	n := NewWithRunner(runner)

	raw := &domain.RawDocument{
		URI:          "/reports/q3.pdf",
		DeclaredType: "pdf",
		SourceName:   "Q3 Report",
		OrgScope:     "acme",
		Content:      []byte("%PDF-1.4 fake pdf content"),
	}

	result, err := n.Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, result)

	doc := result.Document
	assert.Equal(t, "Q3 Report", doc.SourceName)
	assert.Equal(t, "acme", doc.OrgScope)
	assert.Contains(t, doc.Text, "Revenue grew 12%.")
}

func TestNormalise_RunnerFailure(t *testing.T) {
	runner := &mockRunner{err: errors.New("exit status 1")}
	n := NewWithRunner(runner)

	raw := &domain.RawDocument{
		SourceName: "corrupt.pdf",
		Content:    []byte("not a pdf"),
	}

	_, err := n.Normalise(context.Background(), raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParseFailure)
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestErrPDFToolNotFound(t *testing.T) {
	assert.Error(t, ErrPDFToolNotFound)
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}
