package mcp

import (
	"github.com/custodia-labs/documind/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server calls into.
type Ports struct {
	// QA answers questions.
	QA driving.QAService

	// Ingest adds files and reports store counts.
	Ingest driving.IngestService

	// Document backs the document resources. Optional.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.QA == nil {
		return ErrMissingQAService
	}
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	return nil
}
