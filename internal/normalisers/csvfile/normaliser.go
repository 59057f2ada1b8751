// Package csvfile extracts text from CSV documents.
//
// Each record after the header row is rendered as one JSON object line
// keyed by the header names, preserving column order. This keeps cell
// values adjacent to their column names so lexical retrieval can match
// either.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles CSV documents.
type Normaliser struct{}

// New creates a new CSV normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedTypes returns the declared types this normaliser handles.
func (n *Normaliser) SupportedTypes() []string {
	return []string{"csv"}
}

// Normalise converts a CSV document to a parsed document.
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

// extractText renders each data record as a JSON object line.
func extractText(content []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1 // Tolerate ragged rows.

	header, err := reader.Read()
	if err == io.EOF {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var lines []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		lines = append(lines, recordLine(header, record))
	}

	return strings.Join(lines, "\n"), nil
}

// recordLine builds a JSON object string in header column order.
func recordLine(header, record []string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, key := range header {
		if i > 0 {
			b.WriteByte(',')
		}
		value := ""
		if i < len(record) {
			value = record[i]
		}
		writeJSONString(&b, key)
		b.WriteByte(':')
		writeJSONString(&b, value)
	}
	b.WriteByte('}')
	return b.String()
}

func writeJSONString(b *strings.Builder, s string) {
	// json.Marshal of a string cannot fail.
	encoded, _ := json.Marshal(s)
	b.Write(encoded)
}
