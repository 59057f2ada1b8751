// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Normaliser: Extracts plain text from a declared document format
//   - ChunkStore: Append-only chunk persistence
//   - AuditStore: Append-only audit entry persistence
//   - PostProcessor: Turns extracted text into chunks
//   - SettingsStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - WebSearchService: External web evidence. Without it (or on any
//     provider failure) answers are grounded on documents alone.
//   - LLMService for governance: without it the coordinator attaches the
//     documented fallback report.
//
// The primary LLMService is the one hard dependency of answering:
// without it Answer fails with domain.ErrLLMUnavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
