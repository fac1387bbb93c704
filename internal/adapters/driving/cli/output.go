package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}

// emitStructured writes v as JSON or YAML when --format asks for it and
// reports whether it did. Text output is left to the caller.
func emitStructured(cmd *cobra.Command, v any) (bool, error) {
	switch formatFlag {
	case formatJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

// documentView is the serialised form of a stored document.
type documentView struct {
	ID          string    `json:"id" yaml:"id"`
	Filename    string    `json:"filename" yaml:"filename"`
	DocType     string    `json:"doc_type" yaml:"doc_type"`
	Summary     string    `json:"summary,omitempty" yaml:"summary,omitempty"`
	ContentHash string    `json:"content_hash" yaml:"content_hash"`
	FileSize    int64     `json:"file_size" yaml:"file_size"`
	TotalPages  int       `json:"total_pages" yaml:"total_pages"`
	TotalChunks int       `json:"total_chunks" yaml:"total_chunks"`
	AddedAt     time.Time `json:"added_at" yaml:"added_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

func newDocumentView(d *domain.DocumentObject) documentView {
	return documentView{
		ID:          d.ID,
		Filename:    d.Filename,
		DocType:     string(d.DocType),
		Summary:     d.Summary,
		ContentHash: d.ContentHash,
		FileSize:    d.FileSize,
		TotalPages:  d.TotalPages,
		TotalChunks: d.TotalChunks,
		AddedAt:     d.AddedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// chunkView is the serialised form of a stored chunk.
type chunkView struct {
	ID         string `json:"id" yaml:"id"`
	ChunkIndex int    `json:"chunk_index" yaml:"chunk_index"`
	PageNumber int    `json:"page_number" yaml:"page_number"`
	Type       string `json:"element_type" yaml:"element_type"`
	Content    string `json:"content" yaml:"content"`
	Entities   string `json:"entities,omitempty" yaml:"entities,omitempty"`
}

// uniqueSources drops repeated (file, page) citations, keeping order.
func uniqueSources(sources []domain.Source) []domain.Source {
	out := make([]domain.Source, 0, len(sources))
	for _, s := range sources {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
