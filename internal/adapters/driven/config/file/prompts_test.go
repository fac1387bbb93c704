package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/documind/internal/core/ports/driven"
)

func newTestPromptStore(t *testing.T) (*PromptStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "prompts")
	store, err := NewPromptStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewPromptStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewPromptStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DirName, "prompts"), store.Dir())
}

func TestPromptStore_ConstructorWritesNothing(t *testing.T) {
	_, dir := newTestPromptStore(t)

	assert.NoDirExists(t, dir)
}

func TestPromptStore_Init_WritesEveryTemplate(t *testing.T) {
	store, dir := newTestPromptStore(t)

	require.NoError(t, store.Init())

	for _, name := range driven.PromptNames() {
		data, err := os.ReadFile(filepath.Join(dir, name+".txt"))
		require.NoError(t, err, name)
		assert.Equal(t, driven.DefaultPrompt(name), strings.TrimSpace(string(data)), name)
	}
	assert.FileExists(t, filepath.Join(dir, "README.md"))
}

func TestPromptStore_DefaultPlaceholders(t *testing.T) {
	store, _ := newTestPromptStore(t)

	// formatting code relies on these counts
	placeholders := map[string]int{
		driven.PromptQASystem:            0,
		driven.PromptQAUser:              2,
		driven.PromptSummarySystem:       0,
		driven.PromptSummaryIntermediate: 1,
		driven.PromptSummaryFinal:        1,
		driven.PromptNER:                 1,
	}
	for name, want := range placeholders {
		prompt, err := store.Load(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, strings.Count(prompt, "%s"), name)
	}
}

func TestPromptStore_Load_CustomTemplate(t *testing.T) {
	store, dir := newTestPromptStore(t)
	require.NoError(t, store.Init())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "summary_final.txt"),
		[]byte("\n  Summarise in German: %s  \n"), 0600))

	prompt, err := store.Load(driven.PromptSummaryFinal)

	require.NoError(t, err)
	assert.Equal(t, "Summarise in German: %s", prompt)
}

func TestPromptStore_Load_MissingOrEmptyFallsBack(t *testing.T) {
	store, dir := newTestPromptStore(t)
	require.NoError(t, store.Init())
	require.NoError(t, os.Remove(filepath.Join(dir, "qa_system.txt")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ner.txt"), []byte("   \n"), 0600))

	qa, err := store.Load(driven.PromptQASystem)
	require.NoError(t, err)
	assert.Equal(t, driven.DefaultPrompt(driven.PromptQASystem), qa)

	ner, err := store.Load(driven.PromptNER)
	require.NoError(t, err)
	assert.Equal(t, driven.DefaultPrompt(driven.PromptNER), ner)
}

func TestPromptStore_Load_UnknownName(t *testing.T) {
	store, _ := newTestPromptStore(t)

	_, err := store.Load("does_not_exist")

	assert.Error(t, err)
}

func TestPromptStore_CacheAndReload(t *testing.T) {
	store, dir := newTestPromptStore(t)
	path := filepath.Join(dir, "qa_user.txt")

	first, err := store.Load(driven.PromptQAUser)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("edited %s %s"), 0600))
	cached, err := store.Load(driven.PromptQAUser)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()
	reloaded, err := store.Load(driven.PromptQAUser)
	require.NoError(t, err)
	assert.Equal(t, "edited %s %s", reloaded)
}

func TestPromptStore_KeepsUserEdits(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "qa_system.txt"), []byte("Answer in French."), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Init())

	data, err := os.ReadFile(filepath.Join(dir, "qa_system.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Answer in French.", string(data))
}

func TestPromptStore_InitFailureUsesDefaults(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	store, err := NewPromptStore(filepath.Join(blocker, "prompts"))
	require.NoError(t, err)

	assert.Error(t, store.Init())

	prompt, err := store.Load(driven.PromptSummarySystem)
	require.NoError(t, err)
	assert.Equal(t, driven.DefaultPrompt(driven.PromptSummarySystem), prompt)
}

func TestPromptStore_ConcurrentLoads(t *testing.T) {
	store, _ := newTestPromptStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, name := range driven.PromptNames() {
				_, err := store.Load(name)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}
