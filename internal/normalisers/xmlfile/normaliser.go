// Package xmlfile extracts text from XML documents by flattening element
// character data. Markup structure is discarded; only the text content
// matters for lexical retrieval.
package xmlfile

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles XML documents.
type Normaliser struct{}

// New creates a new XML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedTypes returns the declared types this normaliser handles.
func (n *Normaliser) SupportedTypes() []string {
	return []string{"xml"}
}

// Normalise converts an XML document to a parsed document.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text, err := extractText(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParseFailure, err)
	}

	return &driven.NormaliseResult{
		Document: domain.ParsedDocument{
			SourceName:  raw.SourceName,
			Description: raw.Description,
			OrgScope:    raw.OrgScope,
			Text:        text,
		},
	}, nil
}

// extractText walks the token stream and collects character data.
// The whole document is parsed before anything is returned, so a
// malformed document yields an error and no partial output.
func extractText(content []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var parts []string
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		if data, ok := token.(xml.CharData); ok {
			if trimmed := strings.TrimSpace(string(data)); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
	}

	return strings.Join(parts, "\n"), nil
}
