package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a document's declared type has no
	// registered extractor. The document produces no partial output.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrParseFailure indicates a document could not be parsed
	// (corrupt file, missing file). Isolated per document in a batch.
	ErrParseFailure = errors.New("document parse failure")

	// ErrUpstreamModel indicates the primary language model call failed
	// or returned unrecoverable output. Fatal to the whole request;
	// there is no fallback answer.
	ErrUpstreamModel = errors.New("upstream model error")

	// ErrProviderTimeout indicates an optional provider (web search,
	// governance evaluator) timed out. Absorbed into degraded values,
	// never surfaced to the top-level caller.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrChainIntegrity indicates audit chain verification found a hash
	// or linkage mismatch. Raised only by Verify, never by Append.
	ErrChainIntegrity = errors.New("audit chain integrity violation")

	// ErrLLMUnavailable indicates no language model service is
	// configured. Answering is disabled without one.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
