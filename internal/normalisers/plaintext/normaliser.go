// Package plaintext provides the normaliser for .txt résumés.
package plaintext

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// utf8BOM is stripped from the start of text files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedFormats returns the formats this normaliser handles.
func (n *Normaliser) SupportedFormats() []domain.Format {
	return []domain.Format{domain.FormatText}
}

// Normalise decodes the bytes as UTF-8. Invalid sequences are dropped
// rather than failing, so a mis-encoded upload still yields its readable text.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	content := bytes.TrimPrefix(raw.Content, utf8BOM)
	text := string(content)
	if !utf8.Valid(content) {
		text = strings.ToValidUTF8(text, "")
	}

	// Normalise Windows line endings so section headers anchor on "\n".
	text = strings.ReplaceAll(text, "\r\n", "\n")

	return strings.TrimSpace(text), nil
}
