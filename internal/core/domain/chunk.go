package domain

import "time"

// Chunk represents a bounded slice of a parsed document's text.
// It is the retrieval candidate unit and is immutable once created.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Text is the chunk's text content.
	Text string

	// SourceName is the human-readable name of the originating document.
	SourceName string

	// SourceDescription is the originating document's description, if any.
	SourceDescription string

	// SequenceIndex is the chunk's position within its source document,
	// starting at 0. Used for citation display, not ordering guarantees.
	SequenceIndex int

	// OrgScope identifies the owning organization. Retrieval never
	// returns chunks outside the requested scope.
	OrgScope string

	// IngestedAt is when the chunk was created.
	IngestedAt time.Time
}
