package driven

import (
	"context"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// Normaliser decodes one document format into plain text.
type Normaliser interface {
	// SupportedFormats returns the formats this normaliser handles.
	SupportedFormats() []domain.Format

	// Normalise returns the document's text with surrounding whitespace trimmed.
	// Decoder failures wrap domain.ErrExtractionFailure. An empty string means
	// the document genuinely holds no text.
	Normalise(ctx context.Context, raw *domain.RawDocument) (string, error)
}
