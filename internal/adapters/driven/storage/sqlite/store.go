// Package sqlite provides persistent store implementations backed by a
// single SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/verity-labs/verity/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// chunk and audit store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.verity/data/verity.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".verity", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "verity.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ChunkStore returns a ChunkStore interface backed by this store.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{store: s}
}

// AuditStore returns an AuditStore interface backed by this store.
func (s *Store) AuditStore() driven.AuditStore {
	return &auditStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Chunk Store ====================

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// AppendChunks appends chunks in the given order. The whole batch is
// one transaction so a failure writes nothing.
func (s *chunkStore) AppendChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, text, source_name, source_description, sequence_index, org_scope, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.Text, chunk.SourceName,
			chunk.SourceDescription, chunk.SequenceIndex, chunk.OrgScope, chunk.IngestedAt); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListByScope returns all chunks for a scope in ingestion order.
func (s *chunkStore) ListByScope(ctx context.Context, orgScope string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, text, source_name, source_description, sequence_index, org_scope, ingested_at
		FROM chunks WHERE org_scope = ?
		ORDER BY rowid_order
	`, orgScope)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var description sql.NullString
		if err := rows.Scan(&chunk.ID, &chunk.Text, &chunk.SourceName,
			&description, &chunk.SequenceIndex, &chunk.OrgScope, &chunk.IngestedAt); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunk.SourceDescription = description.String
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// ==================== Audit Store ====================

// auditStore implements driven.AuditStore.
type auditStore struct {
	store *Store
}

var _ driven.AuditStore = (*auditStore)(nil)

// Append adds an entry at the tail. The sequence_id primary key rejects
// a duplicate sequence position outright.
func (s *auditStore) Append(ctx context.Context, entry domain.AuditEntry) error {
	detailsJSON, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("marshalling details: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO audit_entries (sequence_id, id, timestamp, actor, action, details, previous_hash, hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.SequenceID, entry.ID, entry.Timestamp, entry.Actor, entry.Action,
		string(detailsJSON), entry.PreviousHash, entry.Hash)

	if err != nil {
		return fmt.Errorf("saving audit entry: %w", err)
	}
	return nil
}

// Last returns the tail entry, or domain.ErrNotFound when empty.
func (s *auditStore) Last(ctx context.Context) (*domain.AuditEntry, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT sequence_id, id, timestamp, actor, action, details, previous_hash, hash
		FROM audit_entries ORDER BY sequence_id DESC LIMIT 1
	`)

	entry, err := scanAuditEntry(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

// List returns all entries in chain order.
func (s *auditStore) List(ctx context.Context) ([]domain.AuditEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT sequence_id, id, timestamp, actor, action, details, previous_hash, hash
		FROM audit_entries ORDER BY sequence_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying audit entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		entry, err := scanAuditEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit entries: %w", err)
	}

	return entries, nil
}

// scanAuditEntry scans one audit row through the given Scan function.
func scanAuditEntry(scan func(...any) error) (*domain.AuditEntry, error) {
	var entry domain.AuditEntry
	var detailsJSON sql.NullString

	if err := scan(&entry.SequenceID, &entry.ID, &entry.Timestamp, &entry.Actor,
		&entry.Action, &detailsJSON, &entry.PreviousHash, &entry.Hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scanning audit entry: %w", err)
	}

	if detailsJSON.Valid && detailsJSON.String != "" && detailsJSON.String != "null" {
		if err := json.Unmarshal([]byte(detailsJSON.String), &entry.Details); err != nil {
			return nil, fmt.Errorf("unmarshalling details: %w", err)
		}
	}

	return &entry, nil
}
