package plaintext

import (
	"context"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents. The bytes pass through
// unchanged as the extracted text.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedTypes returns the declared types this normaliser handles.
func (n *Normaliser) SupportedTypes() []string {
	return []string{"txt", "md", "json"}
}

// Normalise converts a raw document to a parsed document.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	return &driven.NormaliseResult{
		Document: domain.ParsedDocument{
			SourceName:  raw.SourceName,
			Description: raw.Description,
			OrgScope:    raw.OrgScope,
			Text:        string(raw.Content),
		},
	}, nil
}
