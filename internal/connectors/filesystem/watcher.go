package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/documind/internal/logger"
)

// DefaultSettle is how long a file must stay quiet before it is handled.
// Editors and copies emit several writes per file.
const DefaultSettle = 500 * time.Millisecond

// Watcher reports supported files created or modified under a root
// directory, recursively. Hidden files and directories are ignored.
type Watcher struct {
	root     string
	supports func(path string) bool
	settle   time.Duration
	fsw      *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]time.Time
}

// NewWatcher watches root and every non-hidden directory below it.
// supports filters the files that are reported; nil accepts all.
func NewWatcher(root string, supports func(path string) bool) (*Watcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		supports: supports,
		settle:   DefaultSettle,
		fsw:      fsw,
		pending:  make(map[string]time.Time),
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree registers dir and its non-hidden subdirectories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run delivers settled paths to handle until ctx is cancelled.
// handle runs on the calling goroutine, one path at a time.
func (w *Watcher) Run(ctx context.Context, handle func(path string)) error {
	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if path, ok := w.handleFsEvent(event); ok {
				w.mark(path, time.Now())
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				logger.Warn("Watch queue overflowed, some changes may be missed")
				continue
			}
			return fmt.Errorf("watch %s: %w", w.root, err)
		case now := <-ticker.C:
			for _, path := range w.due(now) {
				handle(path)
			}
		}
	}
}

// handleFsEvent returns the file path an event refers to when it should
// be ingested. New directories are added to the watch list.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if isHidden(event.Name) {
		return "", false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := w.addTree(event.Name); err != nil {
				logger.Warn("Could not watch %s: %v", event.Name, err)
			}
		}
		return "", false
	}
	if w.supports != nil && !w.supports(event.Name) {
		return "", false
	}
	return event.Name, true
}

func (w *Watcher) mark(path string, at time.Time) {
	w.mu.Lock()
	w.pending[path] = at
	w.mu.Unlock()
}

// due removes and returns the paths quiet for at least the settle time.
func (w *Watcher) due(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var ready []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.settle {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	slices.Sort(ready)
	return ready
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
