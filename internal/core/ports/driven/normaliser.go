package driven

import (
	"context"

	"github.com/verity-labs/verity/internal/core/domain"
)

// Normaliser extracts plain text from a raw document.
// Each normaliser handles specific declared types (e.g. "pdf", "docx").
type Normaliser interface {
	// SupportedTypes returns the declared types this normaliser handles.
	SupportedTypes() []string

	// Normalise transforms a raw document into a parsed document.
	// A document that cannot be parsed fails with domain.ErrParseFailure
	// (or wraps it) and produces no partial output.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Normalisation only produces a single plain-text blob;
// chunking is handled by the PostProcessor pipeline.
type NormaliseResult struct {
	// Document is the parsed document with Text populated.
	Document domain.ParsedDocument
}

// NormaliserRegistry selects the normaliser for a declared type.
type NormaliserRegistry interface {
	// ForType returns the normaliser registered for the declared type,
	// or domain.ErrUnsupportedFormat when none is registered.
	ForType(declaredType string) (Normaliser, error)
}
