package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader watches the configuration file for changes and reloads it into
// the store.
type Reloader struct {
	watcher *fsnotify.Watcher
	store   *Store
	path    string
	logger  *zap.Logger
	applied func(Config)
}

// NewReloader creates a file watcher for the given config path. The applied
// callback, if non-nil, runs after each successful reload so callers can
// propagate rate-limit changes into a live limiter.
func NewReloader(store *Store, path string, logger *zap.Logger, applied func(Config)) (*Reloader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if _, err := os.Stat(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch config %q: %w", path, err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", path, err)
	}

	return &Reloader{
		watcher: watcher,
		store:   store,
		path:    path,
		logger:  logger,
		applied: applied,
	}, nil
}

// Run watches for file changes and reloads the configuration. Blocks until
// ctx is cancelled.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	// Debounce: wait 500ms after last write before reloading
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(500*time.Millisecond, r.reload)
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

func (r *Reloader) reload() {
	cfg, err := Load(r.path)
	if err != nil {
		// Keep the last good snapshot on a bad reload.
		r.logger.Error("hot-reload failed", zap.String("path", r.path), zap.Error(err))
		return
	}
	r.store.Replace(cfg)
	if r.applied != nil {
		r.applied(cfg)
	}
	r.logger.Info("configuration reloaded", zap.String("path", r.path), zap.String("profile", cfg.Profile))
}
