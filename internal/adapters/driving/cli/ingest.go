package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/documind/internal/connectors/filesystem"
	"github.com/custodia-labs/documind/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <path>",
	Short: "Ingest a file or directory",
	Long: `Ingest a file, or every supported file under a directory, into the store.

Each document is summarised and split into chunks that are embedded for
retrieval. A file whose extracted text is already stored is skipped unless
--force is given.

Supported: .pdf .docx .txt .md .markdown .html .htm .png .jpg .jpeg`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

var ingestForce bool

func init() {
	ingestCmd.Flags().BoolVar(&ingestForce, "force", false, "Re-ingest even if identical content is already stored")
	requires(ingestCmd, NeedAI)
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return notConfigured("ingest")
	}

	path := filesystem.ResolvePath(args[0])
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}

	if info.IsDir() {
		return ingestDirectory(cmd, path)
	}

	res := ingestService.ProcessFile(cmd.Context(), path, ingestForce)
	if ok, err := emitStructured(cmd, res); ok {
		if err != nil {
			return err
		}
	} else {
		printIngestResult(cmd, res)
	}

	if res.Status == domain.IngestError {
		return fmt.Errorf("ingest failed: %s", res.Message)
	}
	return nil
}

func ingestDirectory(cmd *cobra.Command, dir string) error {
	res, err := ingestService.ProcessDirectory(cmd.Context(), dir, ingestForce)
	if err != nil {
		return fmt.Errorf("failed to ingest directory: %w", err)
	}

	if ok, err := emitStructured(cmd, res); ok {
		return err
	}

	for _, group := range [][]domain.IngestResult{res.Processed, res.Skipped, res.Errors} {
		for i := range group {
			printIngestResult(cmd, group[i])
		}
	}
	cmd.Printf("\nProcessed: %d, skipped: %d, failed: %d\n", len(res.Processed), len(res.Skipped), len(res.Errors))

	if len(res.Processed)+len(res.Skipped) == 0 && len(res.Errors) > 0 {
		return errors.New("no file could be ingested")
	}
	return nil
}

func printIngestResult(cmd *cobra.Command, res domain.IngestResult) {
	switch res.Status {
	case domain.IngestSuccess:
		cmd.Printf("ingested  %s (%d chunks, %d pages) id=%s\n",
			res.Document, res.ChunkProcessed, res.TotalPages, res.DocumentID)
	case domain.IngestSkipped:
		cmd.Printf("skipped   %s: %s (stored as %s, id=%s)\n",
			res.Document, res.Reason, res.ExistingFilename, res.ExistingID)
	case domain.IngestError:
		cmd.Printf("failed    %s: %s\n", res.Document, res.Message)
		if res.FailedChunks > 0 {
			cmd.Printf("          %d chunks stored, %d not stored (id=%s)\n",
				res.ChunkProcessed, res.FailedChunks, res.DocumentID)
		}
	}
}
