// Package pdf provides the PDF normaliser. Text extraction shells out to
// pdftotext from poppler.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

const toolName = "pdftotext"

// ErrPDFToolNotFound is returned when pdftotext is not on PATH.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner runs an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil && stderr.Len() > 0 {
		return out, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out, err
}

// Normaliser handles PDF documents.
type Normaliser struct {
	runner   CommandRunner
	lookPath func(string) (string, error)
}

// New creates a PDF normaliser backed by the pdftotext binary.
func New() *Normaliser {
	return NewWithRunner(execRunner{})
}

// NewWithRunner creates a PDF normaliser with a custom command runner.
// The PATH check is skipped for injected runners.
func NewWithRunner(runner CommandRunner) *Normaliser {
	n := &Normaliser{runner: runner}
	if _, ok := runner.(execRunner); ok {
		n.lookPath = exec.LookPath
	}
	return n
}

// CheckAvailable reports whether pdftotext can be found.
func CheckAvailable() error {
	if _, err := exec.LookPath(toolName); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions describes how to install pdftotext.
func InstallInstructions() string {
	return `PDF support requires pdftotext (poppler).
  macOS:         brew install poppler
  Debian/Ubuntu: sudo apt install poppler-utils
  Fedora:        sudo dnf install poppler-utils`
}

// SupportedFormats returns the formats this normaliser handles.
func (n *Normaliser) SupportedFormats() []domain.Format {
	return []domain.Format{domain.FormatPDF}
}

// Normalise writes the PDF to a temporary file and returns the layout text
// pdftotext prints for it.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	if n.lookPath != nil {
		if _, err := n.lookPath(toolName); err != nil {
			return "", fmt.Errorf("pdf: %w: %w", ErrPDFToolNotFound, domain.ErrExtractionFailure)
		}
	}

	tmp, err := os.CreateTemp("", "recruitr-*.pdf")
	if err != nil {
		return "", fmt.Errorf("pdf: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw.Content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("pdf: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("pdf: close temp file: %w", err)
	}

	out, err := n.runner.Run(ctx, toolName, "-layout", "-enc", "UTF-8", tmp.Name(), "-")
	if err != nil {
		return "", fmt.Errorf("pdf: pdftotext failed: %v: %w", err, domain.ErrExtractionFailure)
	}

	return cleanText(string(out)), nil
}

// cleanText drops form feeds and trailing spaces left by -layout.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\f", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
