// Package tui provides the interactive chat interface for DocuMind.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/documind/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI calls into.
type Ports struct {
	// QA answers questions.
	QA driving.QAService

	// Ingest supplies store counts for the status bar. Optional.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.QA == nil {
		return ErrMissingQAService
	}
	return nil
}
