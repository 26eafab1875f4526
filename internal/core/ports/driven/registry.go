package driven

import (
	"context"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// NormaliserRegistry dispatches a document to the normaliser for its format.
// The supported formats are exactly those with a registered normaliser.
type NormaliserRegistry interface {
	// Normalise decodes the document with its format's normaliser.
	// Returns domain.ErrUnsupportedFormat when no normaliser is registered.
	Normalise(ctx context.Context, raw *domain.RawDocument) (string, error)

	// Register adds a normaliser for each of its formats.
	Register(normaliser Normaliser)

	// SupportedFormats returns all formats that can be normalised.
	SupportedFormats() []domain.Format
}
