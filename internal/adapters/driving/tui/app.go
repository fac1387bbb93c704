package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/documind/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/views/chat"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports    *Ports
	ctx      context.Context
	keymap   *keymap.KeyMap
	chatView *chat.View

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:    ports,
		ctx:      context.Background(),
		keymap:   km,
		chatView: chat.NewView(s, km, ports.QA),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx == nil {
		return a
	}
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("documind"),
		a.chatView.Init(),
		a.loadStats(),
	)
}

// loadStats fetches store counts for the status bar.
func (a *App) loadStats() tea.Cmd {
	ingest, ctx := a.ports.Ingest, a.ctx
	if ingest == nil {
		return nil
	}
	return func() tea.Msg {
		stats, err := ingest.Stats(ctx)
		return messages.StatsLoaded{Stats: stats, Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}

	case messages.AnswerReceived:
		// a watch process may have added documents meanwhile
		var cmd tea.Cmd
		a.chatView, cmd = a.chatView.Update(msg)
		return a, tea.Batch(cmd, a.loadStats())
	}

	var cmd tea.Cmd
	a.chatView, cmd = a.chatView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	return a.chatView.View()
}

// Ready reports whether the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}

// Chat returns the chat view.
func (a *App) Chat() *chat.View {
	return a.chatView
}
