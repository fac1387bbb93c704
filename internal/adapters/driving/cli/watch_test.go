package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_NotADirectory(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	file := writeTempFile(t, "a.txt")

	_, err := execute("watch", file)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestWatchCmd_InitialIngestThenStopsOnCancel(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	// subcommands keep the context of their first run
	watchCmd.SetContext(ctx)
	defer watchCmd.SetContext(context.Background())

	out, err := execute("watch", dir, "--initial")

	assert.NoError(t, err)
	assert.Equal(t, dir, ts.ingest.paths[0])
	assert.Contains(t, out, "Processed: 0, skipped: 0, failed: 0")
	assert.Contains(t, out, "Watching "+dir)
}
