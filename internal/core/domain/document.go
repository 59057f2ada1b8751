package domain

// ParsedDocument is the canonical representation after normalisation:
// a single plain-text blob plus the metadata carried onto its chunks.
type ParsedDocument struct {
	// SourceName is the human-readable name of the source document.
	SourceName string

	// Description is the source document's description, if any.
	Description string

	// OrgScope identifies the owning organization.
	OrgScope string

	// Text is the full extracted text before chunking.
	Text string
}
