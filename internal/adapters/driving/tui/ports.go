// Package tui provides an interactive terminal user interface for recruitr.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI talks to.
type Ports struct {
	// Matching ranks résumés against a job.
	Matching driving.MatchingService

	// Records lists and fetches ingested résumés.
	Records driving.RecordService

	// Explain is optional. When set, matches are requested with explanations.
	Explain driving.ExplanationService

	// Defaults are the top-k and threshold used for every match.
	Defaults domain.MatchingSettings
}

// NewPorts creates a Ports aggregate with the default match settings.
func NewPorts(matching driving.MatchingService, records driving.RecordService) *Ports {
	return &Ports{
		Matching: matching,
		Records:  records,
		Defaults: domain.MatchingSettings{
			TopK:      domain.DefaultTopK,
			Threshold: domain.DefaultThreshold,
		},
	}
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Matching == nil {
		return ErrMissingMatchingService
	}
	if p.Records == nil {
		return ErrMissingRecordService
	}
	return nil
}

// matchDefaults returns Defaults with zero fields replaced by domain defaults.
func (p *Ports) matchDefaults() domain.MatchingSettings {
	d := p.Defaults
	if d.TopK <= 0 {
		d.TopK = domain.DefaultTopK
	}
	if d.Threshold <= 0 {
		d.Threshold = domain.DefaultThreshold
	}
	return d
}
