package driven

import "github.com/custodia-labs/recruitr/internal/core/domain"

// FieldExtractor turns plain text into a structured record.
// Implementations are pure: the same text always yields the same record.
type FieldExtractor interface {
	// Extract detects résumé fields. ID, Filename and CreatedAt are left unset.
	// Returns domain.ErrNoContent for empty text.
	Extract(text string) (*domain.StructuredRecord, error)
}
