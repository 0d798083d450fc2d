package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/wizzomafizzo/lintrc/internal/logging"
	"github.com/wizzomafizzo/lintrc/internal/resolver"
)

const defaultDebounce = 500 * time.Millisecond

// WithDebounce sets how long Watch waits after the last change before
// reloading.
func WithDebounce(d time.Duration) AppOption {
	return func(a *App) {
		a.debounce = d
	}
}

// Watch loads the configuration, reports the result, then reloads and
// reports again after every change to the file until ctx is done. It
// watches the real filesystem regardless of the App's afero.Fs.
func (a *App) Watch(ctx context.Context, report func(*resolver.Resolver, error)) error {
	logger := logging.Get(ctx)

	configPath, err := a.ConfigPath()
	if err != nil {
		return err
	}
	path, err := filepath.Abs(configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", configPath, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// the directory is watched so editors that replace the file are seen
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}
	logger.Info().Str("path", path).Msg("watching config file for changes")

	report(a.LoadResolver(ctx))

	debounce := a.debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("config watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug().Str("op", event.Op.String()).Msg("config file changed")

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			report(a.LoadResolver(ctx))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("config watcher error")
		}
	}
}
