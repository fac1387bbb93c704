package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCmd_RequiresTerminal(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	prev := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = prev }()

	_, err := execute("chat")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestChatCmd_NotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	qaService = nil

	_, err := execute("chat")

	assert.ErrorIs(t, err, errNotConfigured)
}
