package config

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/YCN-AFS/LandmarkNavigator/internal/logger"
)

// WatchProviders watches the provider settings file and calls
// onChange with the freshly parsed settings after each write. A file
// revision that fails to parse or validate is skipped, keeping the
// previous settings active. Blocks until ctx is cancelled.
func WatchProviders(ctx context.Context, path string, defaults *Providers, onChange func(*Providers)) error {
	log := logger.GetLogger("config")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("providers: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("providers: watch %s: %w", path, err)
	}

	log.Infow("watching provider settings", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			p, err := LoadProviders(path, defaults)
			if err != nil {
				log.Warnw("provider settings reload failed, keeping previous settings", "error", err)
				continue
			}
			onChange(p)
			log.Infow("provider settings reloaded", "path", path)
			// editors that save by rename replace the inode and drop the watch
			_ = watcher.Add(path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("provider settings watcher error", "error", err)
		}
	}
}
