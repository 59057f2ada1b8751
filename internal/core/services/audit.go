package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
	"github.com/verity-labs/verity/internal/core/ports/driving"
	"github.com/verity-labs/verity/internal/logger"
)

// Ensure AuditLog implements the interface.
var _ driving.AuditService = (*AuditLog)(nil)

// AuditLog maintains the append-only, hash-chained record of privileged
// actions. It is the single serialization point of the core: the mutex
// makes the read-tail / compute-hash / write sequence atomic, so two
// concurrent appends can never both claim the same predecessor and fork
// the chain. The fork is prevented structurally, not detected after the
// fact.
type AuditLog struct {
	mu    sync.Mutex
	store driven.AuditStore

	// tail caches the last committed entry. Loaded from the store on
	// first append and maintained under mu afterwards.
	tail       *domain.AuditEntry
	tailLoaded bool
}

// NewAuditLog creates an audit log over the given store.
func NewAuditLog(store driven.AuditStore) *AuditLog {
	return &AuditLog{store: store}
}

// Append commits a new entry at the tail of the chain.
func (s *AuditLog) Append(ctx context.Context, actor, action string, details map[string]any) (*domain.AuditEntry, error) {
	if actor == "" || action == "" {
		return nil, fmt.Errorf("%w: actor and action are required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tailLoaded {
		last, err := s.store.Last(ctx)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("loading chain tail: %w", err)
		}
		s.tail = last
		s.tailLoaded = true
	}

	previousHash := domain.GenesisHash
	var sequenceID int64
	if s.tail != nil {
		previousHash = s.tail.Hash
		sequenceID = s.tail.SequenceID + 1
	}

	timestamp := time.Now().UTC()
	entry := domain.AuditEntry{
		SequenceID:   sequenceID,
		ID:           uuid.New().String(),
		Timestamp:    timestamp,
		Actor:        actor,
		Action:       action,
		Details:      details,
		PreviousHash: previousHash,
		Hash:         entryHash(previousHash, actor, action, details, timestamp),
	}

	if err := s.store.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("appending audit entry: %w", err)
	}

	s.tail = &entry
	logger.Debug("Audit entry %d committed: actor=%s action=%s", entry.SequenceID, actor, action)
	return &entry, nil
}

// Verify recomputes every entry's hash in chain order and checks that
// PreviousHash linkage is unbroken. It reports the first offending
// sequence position and stops; no repair is attempted.
func (s *AuditLog) Verify(ctx context.Context) (*domain.ValidityReport, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}

	previousHash := domain.GenesisHash
	for _, entry := range entries {
		if entry.PreviousHash != previousHash {
			return &domain.ValidityReport{
				Valid:          false,
				Entries:        len(entries),
				FailedSequence: entry.SequenceID,
				Reason: fmt.Sprintf("%v: entry %d previous hash does not match predecessor",
					domain.ErrChainIntegrity, entry.SequenceID),
			}, nil
		}

		recomputed := entryHash(entry.PreviousHash, entry.Actor, entry.Action, entry.Details, entry.Timestamp)
		if recomputed != entry.Hash {
			return &domain.ValidityReport{
				Valid:          false,
				Entries:        len(entries),
				FailedSequence: entry.SequenceID,
				Reason: fmt.Sprintf("%v: entry %d stored hash does not match recomputation",
					domain.ErrChainIntegrity, entry.SequenceID),
			}, nil
		}

		previousHash = entry.Hash
	}

	return &domain.ValidityReport{Valid: true, Entries: len(entries)}, nil
}

// Recent returns the last n entries, newest first, restricted to the
// given actor identities. An empty actor set returns all actors.
func (s *AuditLog) Recent(ctx context.Context, actors []string, n int) ([]domain.AuditEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}

	allowed := make(map[string]bool, len(actors))
	for _, actor := range actors {
		allowed[actor] = true
	}

	// Walk backwards so the newest matching entries come first.
	result := make([]domain.AuditEntry, 0, n)
	for i := len(entries) - 1; i >= 0; i-- {
		if len(allowed) > 0 && !allowed[entries[i].Actor] {
			continue
		}
		result = append(result, entries[i])
		if n > 0 && len(result) >= n {
			break
		}
	}

	return result, nil
}

// entryHash seals an entry: SHA-256 over the previous hash, actor,
// action, canonical details and timestamp, pipe-separated.
func entryHash(previousHash, actor, action string, details map[string]any, timestamp time.Time) string {
	payload := fmt.Sprintf("%s|%s|%s|%s|%s",
		previousHash, actor, action, canonicalDetails(details),
		timestamp.Format(time.RFC3339Nano))
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// canonicalDetails serialises details deterministically. encoding/json
// sorts map keys, so equal maps always hash equally.
func canonicalDetails(details map[string]any) string {
	if details == nil {
		return "null"
	}
	encoded, err := json.Marshal(details)
	if err != nil {
		// Details maps carry only JSON-safe values; a failure here is a
		// programming error, but hashing must never pass it through
		// silently as an empty string.
		return fmt.Sprintf("unencodable:%v", err)
	}
	return string(encoded)
}
