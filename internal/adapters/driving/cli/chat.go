package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/documind/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively",
	Long: `Launch an interactive terminal chat over the ingested documents.

Each answer lists the file and page of the chunks it was drawn from.

Controls:
  Enter       - Ask
  PgUp/PgDn   - Scroll the transcript
  Ctrl+L      - Clear the transcript
  Esc/Ctrl+C  - Quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

// isTerminal reports whether stdout is an interactive terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func init() {
	requires(chatCmd, NeedAI)
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) (err error) {
	if qaService == nil {
		return notConfigured("qa")
	}
	if !isTerminal() {
		return errors.New("chat needs an interactive terminal; use 'documind ask' instead")
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("panic in chat: %v", r)
		}
	}()

	app, err := tui.NewApp(&tui.Ports{QA: qaService, Ingest: ingestService})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
