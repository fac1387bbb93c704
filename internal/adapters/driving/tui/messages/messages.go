// Package messages defines Bubbletea message types for the chat TUI.
package messages

import (
	"github.com/custodia-labs/documind/internal/core/domain"
)

// AnswerReceived carries the answer to a submitted question.
type AnswerReceived struct {
	Question string
	Answer   domain.Answer
}

// StatsLoaded carries store counts for the status bar.
type StatsLoaded struct {
	Stats domain.Stats
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
