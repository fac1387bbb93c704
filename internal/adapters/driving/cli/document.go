package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/documind/internal/connectors/filesystem"
	"github.com/custodia-labs/documind/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"document", "docs"},
	Short:   "Manage ingested documents",
	Long:    `List, inspect, look up or delete ingested documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show <doc-id>",
	Short: "Show a document's record and summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete <doc-id>",
	Short: "Delete a document and all its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentLookupCmd = &cobra.Command{
	Use:   "lookup <file>",
	Short: "Find the stored document with the same content as a file",
	Long: `Extract the text of a file, hash it, and report the stored document with
the same content hash, if any. Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentLookup,
}

// showChunks is a flag for the show command.
var showChunks bool

func init() {
	documentShowCmd.Flags().BoolVar(&showChunks, "chunks", false, "Also print the document's chunks")

	for _, c := range []*cobra.Command{documentListCmd, documentShowCmd, documentDeleteCmd, documentLookupCmd} {
		requires(c, NeedStore)
		documentCmd.AddCommand(c)
	}
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return notConfigured("document")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	views := make([]documentView, len(docs))
	for i := range docs {
		views[i] = newDocumentView(&docs[i])
	}
	if ok, err := emitStructured(cmd, views); ok {
		return err
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILE\tTYPE\tPAGES\tCHUNKS\tADDED")
	for i := range docs {
		d := &docs[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			d.ID, d.Filename, d.DocType, d.TotalPages, d.TotalChunks, humanize.Time(d.AddedAt))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return notConfigured("document")
	}

	ctx := cmd.Context()
	doc, err := documentService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	var chunks []domain.DocumentChunk
	if showChunks {
		chunks, err = documentService.Chunks(ctx, doc.ID)
		if err != nil {
			return fmt.Errorf("failed to get chunks: %w", err)
		}
	}

	if formatFlag != formatText {
		out := struct {
			Document documentView `json:"document" yaml:"document"`
			Chunks   []chunkView  `json:"chunks,omitempty" yaml:"chunks,omitempty"`
		}{Document: newDocumentView(doc)}
		for i := range chunks {
			out.Chunks = append(out.Chunks, chunkView{
				ID:         chunks[i].ID,
				ChunkIndex: chunks[i].ChunkIndex,
				PageNumber: chunks[i].PageNumber,
				Type:       chunks[i].ElementType,
				Content:    chunks[i].Content,
				Entities:   chunks[i].EntitiesJSON,
			})
		}
		_, err := emitStructured(cmd, out)
		return err
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  File:     %s\n", doc.Filename)
	cmd.Printf("  Type:     %s\n", doc.DocType)
	cmd.Printf("  Size:     %s\n", humanize.Bytes(uint64(max(doc.FileSize, 0))))
	cmd.Printf("  Pages:    %d\n", doc.TotalPages)
	cmd.Printf("  Chunks:   %d\n", doc.TotalChunks)
	cmd.Printf("  Hash:     %s\n", doc.ContentHash)
	cmd.Printf("  Added:    %s (%s)\n", doc.AddedAt.Format("2006-01-02 15:04:05"), humanize.Time(doc.AddedAt))
	cmd.Printf("  Updated:  %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))

	if doc.Summary != "" {
		cmd.Printf("\n  Summary:\n%s\n", indent(doc.Summary, "    "))
	}

	for i := range chunks {
		cmd.Printf("\n  [%d] page %d, %s\n%s\n",
			chunks[i].ChunkIndex, chunks[i].PageNumber, chunks[i].ElementType, indent(chunks[i].Content, "    "))
	}
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return notConfigured("document")
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", args[0])
	return nil
}

func runDocumentLookup(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return notConfigured("document")
	}

	path := filesystem.ResolvePath(args[0])
	ref, err := documentService.Lookup(cmd.Context(), path)
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("No stored document has the same content as %s.\n", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", path, err)
	}

	out := struct {
		ID       string `json:"id" yaml:"id"`
		Filename string `json:"filename" yaml:"filename"`
		Summary  string `json:"summary,omitempty" yaml:"summary,omitempty"`
	}{ref.ID, ref.Filename, ref.Summary}
	if ok, err := emitStructured(cmd, out); ok {
		return err
	}

	cmd.Printf("Stored as %s (id=%s), added %s\n", ref.Filename, ref.ID, humanize.Time(ref.AddedAt))
	if ref.Summary != "" {
		cmd.Printf("\n%s\n", indent(ref.Summary, "  "))
	}
	return nil
}
