package services

import (
	"context"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
	"github.com/custodia-labs/recruitr/internal/core/ports/driving"
)

// Ensure StatusService implements the interface.
var _ driving.StatusService = (*StatusService)(nil)

// Health check names.
const (
	CheckEmbedding = "embedding_model"
	CheckIndex     = "vector_index"
	CheckRecords   = "record_store"
	CheckLLM       = "llm"
)

// StatusService reports whether the engine's collaborators are usable.
type StatusService struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	records  driven.RecordStore
	llm      driven.LLMService
}

// NewStatusService creates a new status service.
// The records and llm parameters are optional (can be nil).
func NewStatusService(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	records driven.RecordStore,
	llm driven.LLMService,
) *StatusService {
	return &StatusService{embedder: embedder, index: index, records: records, llm: llm}
}

// Health checks every collaborator. An unconfigured LLM is reported but
// does not degrade the status.
func (s *StatusService) Health(ctx context.Context) (*domain.HealthStatus, error) {
	status := &domain.HealthStatus{
		Status: domain.HealthHealthy,
		Checks: make(map[string]bool),
	}

	if s.embedder != nil {
		status.EmbeddingModel = s.embedder.ModelName()
		status.Checks[CheckEmbedding] = s.embedder.Ping(ctx) == nil
	} else {
		status.Checks[CheckEmbedding] = false
	}

	if s.index != nil {
		status.Index = s.index.Stats()
		status.Checks[CheckIndex] = status.Index.IndexFileExists && status.Index.MetadataFileExists &&
			(s.embedder == nil || s.embedder.Dimensions() == s.index.Dimension())
	} else {
		status.Checks[CheckIndex] = false
	}

	if s.records != nil {
		_, err := s.records.Count(ctx)
		status.Checks[CheckRecords] = err == nil
	}

	for _, ok := range status.Checks {
		if !ok {
			status.Status = domain.HealthDegraded
		}
	}

	// Reported after the status roll-up.
	status.Checks[CheckLLM] = s.llm != nil
	if s.llm != nil {
		status.LLMModel = s.llm.ModelName()
	}

	return status, nil
}
