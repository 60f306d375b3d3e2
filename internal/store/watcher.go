package store

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// HistoryWatcher reloads a History when its file is written by another
// process, e.g. a picker launch while the TUI is open.
type HistoryWatcher struct {
	watcher  *fsnotify.Watcher
	history  *History
	filePath string
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewHistoryWatcher creates a watcher for the history file at filePath.
func NewHistoryWatcher(history *History, filePath string) (*HistoryWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &HistoryWatcher{
		watcher:  w,
		history:  history,
		filePath: filePath,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. The parent directory is watched since editors and
// Rewrite replace the file rather than writing in place.
func (hw *HistoryWatcher) Start() error {
	hw.mu.Lock()
	if hw.running {
		hw.mu.Unlock()
		return nil
	}
	hw.running = true
	hw.mu.Unlock()

	if err := hw.watcher.Add(filepath.Dir(hw.filePath)); err != nil {
		return err
	}

	go hw.watch()
	return nil
}

func (hw *HistoryWatcher) watch() {
	filename := filepath.Base(hw.filePath)

	for {
		select {
		case event, ok := <-hw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				slog.Debug("history changed, reloading", "file", hw.filePath)
				if err := hw.history.Hydrate(); err != nil {
					slog.Warn("failed to reload history", "error", err)
				}
			}

		case err, ok := <-hw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("history watcher error", "error", err)

		case <-hw.done:
			return
		}
	}
}

// Stop stops the watcher.
func (hw *HistoryWatcher) Stop() error {
	hw.mu.Lock()
	defer hw.mu.Unlock()

	if !hw.running {
		return hw.watcher.Close()
	}

	hw.running = false
	close(hw.done)
	return hw.watcher.Close()
}
