package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DirName, "config.toml"), store.Path())
}

func TestNewConfigStoreAt_CreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "custom.toml")

	store, err := NewConfigStoreAt(path)

	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	assert.DirExists(t, filepath.Dir(path))
}

func TestConfigStore_ReadsNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := `
[store]
backend = "memory"

[llm]
provider = "openai"
temperature = 0.7

[qa]
top_k = 8

[ner]
enabled = true

[ocr]
languages = ["eng", "deu"]
min_confidence = 1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "memory", store.GetString("store.backend"))
	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.InDelta(t, 0.7, store.GetFloat("llm.temperature"), 1e-9)
	assert.Equal(t, 8, store.GetInt("qa.top_k"))
	assert.True(t, store.GetBool("ner.enabled"))
	assert.Equal(t, []string{"eng", "deu"}, store.GetStringSlice("ocr.languages"))
	assert.InDelta(t, 1.0, store.GetFloat("ocr.min_confidence"), 1e-9)
}

func TestConfigStore_TypeMismatchReturnsZero(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("a", true))

	assert.Empty(t, store.GetString("a"))
	assert.Zero(t, store.GetInt("a"))
	assert.Zero(t, store.GetFloat("a"))
	assert.Nil(t, store.GetStringSlice("a"))
	assert.False(t, store.GetBool("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_SaveWritesNestedTOML(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.model", "gemma3:4b"))
	require.NoError(t, store.Set("qa.top_k", 3))
	require.NoError(t, store.Set("chunking.chunk_size", int64(500)))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[llm]")
	assert.Contains(t, string(data), "[qa]")
	assert.NotContains(t, string(data), "'llm.model'")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "gemma3:4b", reloaded.GetString("llm.model"))
	assert.Equal(t, 3, reloaded.GetInt("qa.top_k"))
	assert.Equal(t, 500, reloaded.GetInt("chunking.chunk_size"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[broken"), 0600))

	_, err := NewConfigStore(dir)

	assert.Error(t, err)
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Empty(t, store.GetString("anything"))
	require.NoError(t, store.Set("k", "v"))
}

func TestConfigStore_LoadEnv(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.model", "from-file"))
	require.NoError(t, store.Set("qa.top_k", 5))

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DOCUMIND_LLM_MODEL=from-dotenv\nDOCUMIND_QA_TOP_K=9\n"), 0600))
	t.Setenv("DOCUMIND_LLM_MODEL", "")
	os.Unsetenv("DOCUMIND_LLM_MODEL")
	t.Setenv("DOCUMIND_QA_TOP_K", "")
	os.Unsetenv("DOCUMIND_QA_TOP_K")
	t.Setenv("DOCUMIND_NER_ENABLED", "true")

	require.NoError(t, store.LoadEnv(envFile, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "from-dotenv", store.GetString("llm.model"))
	assert.Equal(t, 9, store.GetInt("qa.top_k"))
	assert.True(t, store.GetBool("ner.enabled"))

	// Overrides are never persisted.
	require.NoError(t, store.Save())
	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-file", reloaded.GetString("llm.model"))
}

func TestConfigStore_LoadEnv_ProcessEnvWins(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DOCUMIND_EMBEDDING_MODEL=dotenv\n"), 0600))
	t.Setenv("DOCUMIND_EMBEDDING_MODEL", "process")

	require.NoError(t, store.LoadEnv(envFile))

	assert.Equal(t, "process", store.GetString("embedding.model"))
}

func TestConfigStore_OverrideStringSlice(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	store.overrides["ocr.languages"] = "eng, rus,,fra"

	assert.Equal(t, []string{"eng", "rus", "fra"}, store.GetStringSlice("ocr.languages"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("qa.top_k", i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("qa.top_k")
		}()
	}
	wg.Wait()
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"store.backend": "sqlite",
		"llm.model":     "m",
		"llm.api_key":   "k",
		"flat":          1,
	})

	assert.Equal(t, map[string]any{
		"store": map[string]any{"backend": "sqlite"},
		"llm":   map[string]any{"model": "m", "api_key": "k"},
		"flat":  1,
	}, nested)
	assert.Equal(t, map[string]any{
		"store.backend": "sqlite",
		"llm.model":     "m",
		"llm.api_key":   "k",
		"flat":          1,
	}, flattenMap(nested, ""))
}
