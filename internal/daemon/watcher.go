package daemon

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher calls a function whenever the config file changes. It
// watches the parent directory so that editors replacing the file are
// noticed, and polls as a safeguard for filesystems without events.
type ConfigWatcher struct {
	path     string
	interval time.Duration
	onChange func()
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	modTime time.Time
	size    int64
}

// NewConfigWatcher creates a watcher for path. A zero interval polls every
// five seconds.
func NewConfigWatcher(path string, interval time.Duration, onChange func(), logger *slog.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &ConfigWatcher{
		path:     filepath.Clean(path),
		interval: interval,
		onChange: onChange,
		watcher:  watcher,
		logger:   logger,
	}, nil
}

// Run blocks until ctx is cancelled.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.changed()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("config watcher started", "path", w.path, "interval", w.interval)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("config watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				if w.changed() {
					w.fire()
				}
			}

		case <-ticker.C:
			if w.changed() {
				w.fire()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

// changed records the file's size and modification time and reports
// whether either differs from the last observation. A missing file never
// counts as a change.
func (w *ConfigWatcher) changed() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}
	if info.ModTime().Equal(w.modTime) && info.Size() == w.size {
		return false
	}
	w.modTime = info.ModTime()
	w.size = info.Size()
	return true
}

func (w *ConfigWatcher) fire() {
	defer func() {
		if err := recover(); err != nil {
			w.logger.Error("config reload panic recovered", "error", err)
		}
	}()
	w.logger.Info("config file changed", "path", w.path)
	w.onChange()
}
