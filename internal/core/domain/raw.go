package domain

// RawDocument represents opaque bytes handed to the ingestion pipeline.
// It is the document store's output before normalisation.
type RawDocument struct {
	// URI is the original location (file path, URL, etc).
	URI string

	// DeclaredType is the declared document type (e.g. "pdf", "docx",
	// "txt", "csv", "xml"). Selects the normaliser; unknown types fail
	// ingestion with ErrUnsupportedFormat.
	DeclaredType string

	// SourceName is the human-readable name carried onto chunks.
	SourceName string

	// Description is an optional description carried onto chunks.
	Description string

	// OrgScope identifies the owning organization.
	OrgScope string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains caller-specific key-value pairs.
	Metadata map[string]any
}

// DocumentFailure records one document's ingestion failure within a batch.
type DocumentFailure struct {
	// URI identifies the failed document.
	URI string

	// Err is the ingestion error for this document.
	Err error
}

// IngestReport summarises a batch ingestion. Per-document failures are
// isolated: a corrupt document never aborts the rest of the batch.
type IngestReport struct {
	// ChunksAdded is the total number of chunks appended to the store.
	ChunksAdded int

	// Succeeded lists the URIs of documents ingested in full.
	Succeeded []string

	// Failed lists each document that could not be ingested.
	Failed []DocumentFailure
}
