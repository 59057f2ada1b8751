// Package watcher triggers ingestion from filesystem events. Dropping a
// file into a watched directory ingests it asynchronously, keeping
// ingestion decoupled from query time.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driving"
	"github.com/verity-labs/verity/internal/logger"
)

// Watcher ingests files appearing in a directory.
type Watcher struct {
	ingest   driving.IngestService
	orgScope string
}

// New creates a watcher that ingests into the given organisation scope.
func New(ingest driving.IngestService, orgScope string) (*Watcher, error) {
	if ingest == nil {
		return nil, fmt.Errorf("%w: ingest service is required", domain.ErrInvalidInput)
	}
	if orgScope == "" {
		return nil, fmt.Errorf("%w: org scope is required", domain.ErrInvalidInput)
	}
	return &Watcher{ingest: ingest, orgScope: orgScope}, nil
}

// Run watches dir until the context is cancelled. Files already present
// are not ingested; only files created or written while watching.
// Per-file ingestion failures are logged and skipped.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating filesystem watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Info("Watching %s for scope %s", dir, w.orgScope)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if err := w.IngestPath(ctx, event.Name); err != nil {
				logger.Error("Ingesting %s failed: %v", event.Name, err)
			}

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// IngestPath ingests one file from disk. Directories and dotfiles are
// ignored without error.
func (w *Watcher) IngestPath(ctx context.Context, path string) error {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}
	if info.IsDir() {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	raw := &domain.RawDocument{
		URI:          path,
		DeclaredType: strings.TrimPrefix(filepath.Ext(path), "."),
		SourceName:   base,
		OrgScope:     w.orgScope,
		Content:      content,
	}

	chunks, err := w.ingest.Ingest(ctx, raw)
	if err != nil {
		return err
	}
	logger.Info("Ingested %s: %d chunk(s)", base, len(chunks))
	return nil
}
