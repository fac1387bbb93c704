package cli

import (
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/documind/internal/core/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	requires(statsCmd, NeedStore)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return notConfigured("ingest")
	}

	stats, err := ingestService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if ok, err := emitStructured(cmd, stats); ok {
		return err
	}

	cmd.Printf("%-21s%s\n", "Documents:", humanize.Comma(int64(stats.TotalDocuments)))
	cmd.Printf("%-21s%s\n", "Chunks:", humanize.Comma(int64(stats.TotalChunks)))
	cmd.Printf("%-21s%.1f\n", "Chunks per document:", stats.AvgChunksPerDoc)

	if len(stats.DocumentsByType) > 0 {
		types := make([]domain.DocType, 0, len(stats.DocumentsByType))
		for t := range stats.DocumentsByType {
			types = append(types, t)
		}
		slices.Sort(types)

		cmd.Println("\nBy type:")
		for _, t := range types {
			cmd.Printf("  %-8s %d\n", t, stats.DocumentsByType[t])
		}
	}
	return nil
}
