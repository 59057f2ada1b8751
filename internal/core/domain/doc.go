// Package domain defines the core business entities for Verity.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: Opaque bytes handed to the ingestion pipeline
//   - Chunk: A bounded slice of parsed document text, the retrieval unit
//   - EvidenceItem: A normalised document chunk or web result for grounding
//   - Answer / GovernanceReport: The model output returned to callers
//   - AuditEntry: One link of the tamper-evident audit chain
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
