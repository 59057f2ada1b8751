package normalisers

import (
	"strings"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps declared document types to normalisers.
type Registry struct {
	byType map[string]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[string]driven.Normaliser),
	}
}

// Register adds a normaliser for every type it supports.
// Later registrations win for overlapping types.
func (r *Registry) Register(n driven.Normaliser) {
	for _, t := range n.SupportedTypes() {
		r.byType[normaliseType(t)] = n
	}
}

// ForType returns the normaliser for a declared type, or
// domain.ErrUnsupportedFormat when none is registered.
func (r *Registry) ForType(declaredType string) (driven.Normaliser, error) {
	n, ok := r.byType[normaliseType(declaredType)]
	if !ok {
		return nil, domain.ErrUnsupportedFormat
	}
	return n, nil
}

// Types returns all registered declared types.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.byType))
	for t := range r.byType {
		types = append(types, t)
	}
	return types
}

// normaliseType lower-cases and strips a leading dot, so "PDF", "pdf"
// and ".pdf" all select the same normaliser.
func normaliseType(t string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(t)), ".")
}
