package domain

import "time"

// GenesisHash is the PreviousHash of the first entry in an audit chain.
const GenesisHash = "GENESIS_HASH"

// AuditEntry is one link of the append-only, hash-chained audit log.
// Entries are created exactly once at write time and never mutated.
type AuditEntry struct {
	// SequenceID is the entry's position in write order, starting at 0.
	SequenceID int64

	// ID is the unique identifier for the entry.
	ID string

	// Timestamp is when the entry was committed, in UTC.
	Timestamp time.Time

	// Actor is the identity that performed the action.
	Actor string

	// Action names the privileged action (e.g. "query", "answer").
	Action string

	// Details holds action-specific metadata. Serialised canonically
	// (sorted keys) when hashed.
	Details map[string]any

	// PreviousHash is the Hash of the immediately preceding entry,
	// or GenesisHash for the first entry.
	PreviousHash string

	// Hash seals the chain: SHA-256 over the previous hash, actor,
	// action, canonical details and timestamp.
	Hash string
}

// ValidityReport is the result of verifying an audit chain.
type ValidityReport struct {
	// Valid is true when every entry's hash and linkage check out.
	Valid bool

	// Entries is the number of entries examined.
	Entries int

	// FailedSequence is the sequence ID of the first offending entry.
	// Only meaningful when Valid is false.
	FailedSequence int64

	// Reason describes the first violation found.
	Reason string
}
