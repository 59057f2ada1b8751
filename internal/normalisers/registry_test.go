package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
)

type stubNormaliser struct {
	types []string
}

func (s *stubNormaliser) SupportedTypes() []string { return s.types }

func (s *stubNormaliser) Normalise(_ context.Context, _ *domain.RawDocument) (*driven.NormaliseResult, error) {
	return &driven.NormaliseResult{}, nil
}

func TestRegistry_ForType(t *testing.T) {
	r := NewRegistry()
	txt := &stubNormaliser{types: []string{"txt", "md"}}
	r.Register(txt)

	got, err := r.ForType("txt")
	require.NoError(t, err)
	assert.Same(t, driven.Normaliser(txt), got)
}

func TestRegistry_ForType_CaseAndDotInsensitive(t *testing.T) {
	r := NewRegistry()
	pdf := &stubNormaliser{types: []string{"pdf"}}
	r.Register(pdf)

	for _, declared := range []string{"pdf", "PDF", ".pdf", " .PDF "} {
		got, err := r.ForType(declared)
		require.NoError(t, err, "declared type %q", declared)
		assert.Same(t, driven.Normaliser(pdf), got)
	}
}

func TestRegistry_ForType_Unsupported(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubNormaliser{types: []string{"txt"}})

	_, err := r.ForType("exe")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	r := NewRegistry()
	first := &stubNormaliser{types: []string{"csv"}}
	second := &stubNormaliser{types: []string{"csv"}}
	r.Register(first)
	r.Register(second)

	got, err := r.ForType("csv")
	require.NoError(t, err)
	assert.Same(t, driven.Normaliser(second), got)
}
