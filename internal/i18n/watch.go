package i18n

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads label files in dir into the bundle as they change on
// disk. Intended for template authoring; production deployments load
// once at startup. Blocks until ctx is cancelled.
func Watch(ctx context.Context, b *Bundle, dir string, log *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}
	log.Info("watching label directory", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".yaml") {
				continue
			}
			if err := b.LoadFile(ev.Name); err != nil {
				log.Error("label reload failed", "file", ev.Name, "error", err)
				continue
			}
			log.Info("labels reloaded", "file", ev.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("label watcher error", "error", err)
		}
	}
}
