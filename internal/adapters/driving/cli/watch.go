package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/documind/internal/connectors/filesystem"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Ingest files as they appear in a directory",
	Long: `Watch a directory tree and ingest every supported file that is created or
modified in it. Files are ingested one at a time once writes have settled.
Deleting a file does not remove it from the store.

Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchForce   bool
	watchInitial bool
)

func init() {
	watchCmd.Flags().BoolVar(&watchForce, "force", false, "Re-ingest even if identical content is already stored")
	watchCmd.Flags().BoolVar(&watchInitial, "initial", false, "Ingest the directory's existing files before watching")
	requires(watchCmd, NeedAI)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return notConfigured("ingest")
	}

	dir := filesystem.ResolvePath(args[0])
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	ctx := cmd.Context()

	if watchInitial {
		if err := ingestDirectory(cmd, dir); err != nil {
			return err
		}
	}

	supports := supportsPath
	if supports == nil {
		supports = func(string) bool { return true }
	}

	w, err := filesystem.NewWatcher(dir, supports)
	if err != nil {
		return err
	}
	defer w.Close()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)
	return w.Run(ctx, func(path string) {
		printIngestResult(cmd, ingestService.ProcessFile(ctx, path, watchForce))
	})
}
