// Package chunker provides a fixed-size text chunking processor.
package chunker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verity-labs/verity/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// Processor splits parsed document text into fixed-size chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the parsed text into overlapping windows.
// Windows are produced in strictly increasing offset order and tagged
// with SequenceIndex starting at 0. Input chunks are ignored; this
// processor creates new chunks.
func (p *Processor) Process(_ context.Context, doc *domain.ParsedDocument, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	if doc.Text == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	text := doc.Text
	textLen := len(text)

	estimatedChunks := (textLen / (p.chunkSize - p.overlap)) + 1
	chunks := make([]domain.Chunk, 0, estimatedChunks)

	now := time.Now().UTC()
	index := 0
	start := 0

	for start < textLen {
		end := start + p.chunkSize
		if end > textLen {
			end = textLen
		}

		chunks = append(chunks, domain.Chunk{
			ID:                uuid.New().String(),
			Text:              text[start:end],
			SourceName:        doc.SourceName,
			SourceDescription: doc.Description,
			SequenceIndex:     index,
			OrgScope:          doc.OrgScope,
			IngestedAt:        now,
		})
		index++

		// A window reaching the end of the text is the last one; the
		// tail is already covered.
		if end == textLen {
			break
		}

		// Move start forward by (chunkSize - overlap)
		start += p.chunkSize - p.overlap

		// Avoid infinite loop for edge cases
		if p.chunkSize <= p.overlap {
			break
		}
	}

	return chunks, nil
}
