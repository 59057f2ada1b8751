// Package pdf extracts text from PDF documents using the poppler
// pdftotext tool. The external command is wrapped behind a CommandRunner
// so tests can inject a fake.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// ErrPDFToolNotFound indicates the pdftotext binary is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Normaliser handles PDF documents.
type Normaliser struct {
	runner CommandRunner
}

// New creates a new PDF normaliser using the real pdftotext binary.
func New() *Normaliser {
	return &Normaliser{runner: execRunner{}}
}

// NewWithRunner creates a PDF normaliser with an injected runner.
func NewWithRunner(runner CommandRunner) *Normaliser {
	return &Normaliser{runner: runner}
}

// CheckAvailable reports whether pdftotext is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return `PDF extraction requires the pdftotext tool (poppler):
  macOS:  brew install poppler
  Debian: apt install poppler-utils`
}

// SupportedTypes returns the declared types this normaliser handles.
func (n *Normaliser) SupportedTypes() []string {
	return []string{"pdf"}
}

// Normalise converts a PDF document to a parsed document.
// The raw bytes are written to a temporary file because pdftotext
// reads from disk; the file is removed before returning.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	tmpPath := filepath.Join(os.TempDir(), "verity-"+uuid.New().String()+".pdf")
	if err := os.WriteFile(tmpPath, raw.Content, 0600); err != nil {
		return nil, fmt.Errorf("%w: writing temp file: %w", domain.ErrParseFailure, err)
	}
	defer os.Remove(tmpPath)

	// "-" sends extracted text to stdout.
	output, err := n.runner.Run(ctx, "pdftotext", tmpPath, "-")
	if err != nil {
		return nil, fmt.Errorf("%w: pdftotext: %w", domain.ErrParseFailure, err)
	}

	return &driven.NormaliseResult{
		Document: domain.ParsedDocument{
			SourceName:  raw.SourceName,
			Description: raw.Description,
			OrgScope:    raw.OrgScope,
			Text:        string(output),
		},
	}, nil
}
