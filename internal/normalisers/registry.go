package normalisers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
	"github.com/custodia-labs/recruitr/internal/normalisers/docx"
	"github.com/custodia-labs/recruitr/internal/normalisers/html"
	"github.com/custodia-labs/recruitr/internal/normalisers/markdown"
	"github.com/custodia-labs/recruitr/internal/normalisers/pdf"
	"github.com/custodia-labs/recruitr/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps formats to normalisers.
type Registry struct {
	mu          sync.RWMutex
	normalisers map[domain.Format]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{normalisers: make(map[domain.Format]driven.Normaliser)}
}

// NewDefaultRegistry creates a registry with every built-in normaliser.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(pdf.New())
	r.Register(docx.New())
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	return r
}

// Register adds normaliser for each of its formats, replacing any previous one.
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range normaliser.SupportedFormats() {
		r.normalisers[f] = normaliser
	}
}

// SupportedFormats returns the registered formats, sorted.
func (r *Registry) SupportedFormats() []domain.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]domain.Format, 0, len(r.normalisers))
	for f := range r.normalisers {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Normalise dispatches raw to the normaliser for its format.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	r.mu.RLock()
	n, ok := r.normalisers[raw.Format]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("normalise %q: %w", raw.Format, domain.ErrUnsupportedFormat)
	}

	return n.Normalise(ctx, raw)
}
