package export

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 300 * time.Millisecond

// Watch calls rebuild whenever files under dir change, collapsing bursts of
// events that arrive within debounce of each other. It blocks until ctx is done.
func Watch(ctx context.Context, dir string, debounce time.Duration, rebuild func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addTree(watcher, dir); err != nil {
		return err
	}
	slog.Info("watching for changes", "dir", dir)

	// fire is nil while no rebuild is pending.
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			// New directories need their own watch.
			if event.Op&fsnotify.Create != 0 {
				if err := addTree(watcher, event.Name); err != nil {
					slog.Debug("not watching new path", "path", event.Name, "error", err)
				}
			}
			slog.Debug("change detected", "path", event.Name, "op", event.Op.String())
			fire = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)

		case <-fire:
			fire = nil
			if err := rebuild(ctx); err != nil {
				slog.Error("rebuild failed", "error", err)
			}
		}
	}
}

// addTree watches root and every directory below it. Files are covered by
// their parent directory's watch.
func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(path)
	})
}
