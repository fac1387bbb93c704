package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from the ingested documents",
	Long: `Retrieve the chunks most similar to the question and have the LLM answer
from them. The answer lists the file and page of every chunk it was given.`,
	Example: `  documind ask "What was the revenue in 2023?"
  documind ask --top-k 10 --format json which contracts expire this year`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var askTopK int

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "Number of chunks to retrieve (default from config, 5)")
	requires(askCmd, NeedAI)
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if qaService == nil {
		return notConfigured("qa")
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question must not be empty")
	}

	answer := qaService.Answer(cmd.Context(), question)

	if ok, err := emitStructured(cmd, answer); ok {
		if err != nil {
			return err
		}
	} else {
		cmd.Println(answer.Text)
		sources := uniqueSources(answer.Sources)
		if len(sources) > 0 {
			cmd.Println("\nSources:")
			for _, s := range sources {
				cmd.Printf("  - %s, page %d\n", s.File, s.Page)
			}
		}
	}

	if answer.Error != "" {
		return fmt.Errorf("answer generation failed: %s", answer.Error)
	}
	return nil
}
