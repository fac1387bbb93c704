// Package pdf extracts PDF text with the poppler pdftotext tool.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/normalisers"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

const toolName = "pdftotext"

// ErrPDFToolNotFound is returned when pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// Extractor handles PDF documents.
type Extractor struct {
	runner normalisers.CommandRunner
}

// New creates a PDF extractor that runs pdftotext directly.
func New() *Extractor {
	return NewWithRunner(normalisers.ExecRunner{})
}

// NewWithRunner creates a PDF extractor with a custom command runner.
func NewWithRunner(runner normalisers.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// DocType returns the document type this extractor produces.
func (e *Extractor) DocType() domain.DocType {
	return domain.DocTypePDF
}

// Extensions returns the file extensions handled.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract runs `pdftotext -layout <file> -` and splits its output into
// pages on form feeds and paragraphs on blank lines.
func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.Fragment, error) {
	out, err := e.runner.Run(ctx, toolName, "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPDFToolNotFound, InstallInstructions())
		}
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}
	return normalisers.TextFragments(string(out)), nil
}

// CheckAvailable reports whether pdftotext is on the PATH.
func CheckAvailable() error {
	if _, err := exec.LookPath(toolName); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns how to install pdftotext on common platforms.
func InstallInstructions() string {
	return "install pdftotext from poppler: " +
		"macOS: brew install poppler; " +
		"Debian/Ubuntu: apt install poppler-utils; " +
		"Fedora: dnf install poppler-utils"
}
