// Package chat provides the question and answer view for the TUI.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/documind/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driving"
)

// ErrNoQAService is returned when a question is asked without a QA service.
var ErrNoQAService = errors.New("qa service not available")

// Exchange is one question and, once it arrives, its answer.
type Exchange struct {
	Question string
	Answer   domain.Answer
	Pending  bool
}

// View is the chat view: a scrolling transcript above a question line.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.QuestionInput
	statusbar  *status.Bar
	spinner    spinner.Model
	transcript viewport.Model

	qa  driving.QAService
	ctx context.Context

	exchanges []Exchange
	width     int
	height    int
	ready     bool
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km *keymap.KeyMap, qa driving.QAService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Spinner))

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQuestionInput(s),
		statusbar:  status.NewBar(s, km),
		spinner:    sp,
		transcript: viewport.New(80, 16),
		qa:         qa,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context questions are answered under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !v.Thinking() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		v.refresh()
		return v, cmd

	case messages.AnswerReceived:
		v.handleAnswer(msg)
		return v, nil

	case messages.StatsLoaded:
		if msg.Err == nil {
			v.statusbar.SetCounts(msg.Stats.TotalDocuments, msg.Stats.TotalChunks)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Ask):
		return v, v.submit()

	case keymap.Matches(key, v.keymap.ScrollUp), keymap.Matches(key, v.keymap.ScrollDown):
		var cmd tea.Cmd
		v.transcript, cmd = v.transcript.Update(msg)
		return v, cmd

	case keymap.Matches(key, v.keymap.Clear):
		if !v.Thinking() {
			v.exchanges = nil
			v.statusbar.Clear()
			v.refresh()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit starts answering the typed question. Only one question is in
// flight at a time.
func (v *View) submit() tea.Cmd {
	question := strings.TrimSpace(v.input.Value())
	if question == "" || v.Thinking() {
		return nil
	}

	v.input.Reset()
	v.exchanges = append(v.exchanges, Exchange{Question: question, Pending: true})
	v.statusbar.Clear()
	v.statusbar.SetState(status.StateThinking)
	v.refresh()

	return tea.Batch(v.spinner.Tick, v.ask(question))
}

func (v *View) ask(question string) tea.Cmd {
	qa, ctx := v.qa, v.ctx
	return func() tea.Msg {
		if qa == nil {
			return messages.AnswerReceived{
				Question: question,
				Answer:   domain.Answer{Sources: []domain.Source{}, Error: ErrNoQAService.Error()},
			}
		}
		return messages.AnswerReceived{Question: question, Answer: qa.Answer(ctx, question)}
	}
}

func (v *View) handleAnswer(msg messages.AnswerReceived) {
	for i := len(v.exchanges) - 1; i >= 0; i-- {
		if v.exchanges[i].Pending && v.exchanges[i].Question == msg.Question {
			v.exchanges[i].Answer = msg.Answer
			v.exchanges[i].Pending = false
			break
		}
	}

	if msg.Answer.Error != "" {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Answer.Error)
	} else {
		v.statusbar.Clear()
	}
	v.refresh()
}

// refresh re-renders the transcript and keeps the newest turn in view.
func (v *View) refresh() {
	v.transcript.SetContent(v.renderTranscript())
	v.transcript.GotoBottom()
}

func (v *View) renderTranscript() string {
	if len(v.exchanges) == 0 {
		return v.styles.Muted.Render("Ask anything about the ingested documents.")
	}

	wrap := lipgloss.NewStyle().Width(max(v.width-2, 20))
	blocks := make([]string, 0, len(v.exchanges))
	for _, ex := range v.exchanges {
		var b strings.Builder
		b.WriteString(v.styles.Question.Render(wrap.Render("You: " + ex.Question)))
		b.WriteString("\n")

		switch {
		case ex.Pending:
			b.WriteString(v.spinner.View() + " " + v.styles.Muted.Render("thinking"))
		case ex.Answer.Error != "":
			b.WriteString(v.styles.Error.Render(wrap.Render(ex.Answer.Text)))
		case len(ex.Answer.Sources) == 0:
			b.WriteString(v.styles.Warning.Render(wrap.Render(ex.Answer.Text)))
		default:
			b.WriteString(v.styles.Normal.Render(wrap.Render(ex.Answer.Text)))
			for _, src := range uniqueSources(ex.Answer.Sources) {
				b.WriteString("\n")
				b.WriteString(v.styles.Source.Render(fmt.Sprintf("  - %s, page %d", src.File, src.Page)))
			}
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// uniqueSources drops repeated (file, page) pairs, keeping first-seen order.
func uniqueSources(sources []domain.Source) []domain.Source {
	seen := make(map[domain.Source]bool, len(sources))
	out := make([]domain.Source, 0, len(sources))
	for _, s := range sources {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("DocuMind"),
		v.transcript.View(),
		v.input.View(),
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// header 1, input 3, status 1
	v.transcript.Width = width
	v.transcript.Height = max(height-5, 3)
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.refresh()
}

// Thinking reports whether a question is awaiting its answer.
func (v *View) Thinking() bool {
	return len(v.exchanges) > 0 && v.exchanges[len(v.exchanges)-1].Pending
}

// Exchanges returns the transcript so far.
func (v *View) Exchanges() []Exchange {
	return v.exchanges
}

// Ready returns whether the view has been sized.
func (v *View) Ready() bool {
	return v.ready
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}
