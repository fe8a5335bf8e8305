package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce batches the burst of events editors emit on save so one save
// triggers one reload.
const debounce = 500 * time.Millisecond

// Watch reloads the catalog whenever one of its config files changes on
// disk. It blocks until ctx is cancelled. Watching the directory rather
// than the files keeps atomic-save editors (rename over the original)
// covered.
func (c *Catalog) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog.Watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(c.dir); err != nil {
		return fmt.Errorf("catalog.Watch: add %s: %w", c.dir, err)
	}

	known := make(map[string]bool, 5)
	for _, path := range c.Files() {
		known[filepath.Base(path)] = true
	}

	var pending *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !known[filepath.Base(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			c.log.Info().Str("file", filepath.Base(event.Name)).Msg("Config file changed")
			if pending == nil {
				pending = time.NewTimer(debounce)
				fire = pending.C
			} else {
				pending.Reset(debounce)
			}

		case <-fire:
			pending = nil
			fire = nil
			c.Reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Warn().Err(err).Msg("Config watcher error")
		}
	}
}
