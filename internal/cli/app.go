package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/lintrc/internal/config"
	"github.com/wizzomafizzo/lintrc/internal/extensions"
	"github.com/wizzomafizzo/lintrc/internal/logging"
	"github.com/wizzomafizzo/lintrc/internal/resolver"
)

// App holds what every command needs to load a configuration and query it.
type App struct {
	fs         afero.Fs
	registry   *extensions.Registry
	configPath string
	workDir    string
	debounce   time.Duration
	strict     bool
}

// AppOption configures NewApp.
type AppOption func(*App)

// WithWorkDir sets the directory relative paths and config discovery start
// from.
func WithWorkDir(dir string) AppOption {
	return func(a *App) {
		a.workDir = dir
	}
}

// WithStrictExtensions fails loading when an extends entry cannot be
// resolved.
func WithStrictExtensions(strict bool) AppOption {
	return func(a *App) {
		a.strict = strict
	}
}

// WithRegistry sets the named extension bundles available to extends.
func WithRegistry(registry *extensions.Registry) AppOption {
	return func(a *App) {
		a.registry = registry
	}
}

// NewApp creates an App. An empty configPath means the configuration is
// discovered from the working directory upwards.
func NewApp(fs afero.Fs, configPath string, opts ...AppOption) *App {
	a := &App{
		fs:         fs,
		configPath: configPath,
		registry:   extensions.NewRegistry(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ConfigPath returns the configuration file the App reads, discovering it
// when no explicit path was given.
func (a *App) ConfigPath() (string, error) {
	if a.configPath == "" {
		path, err := config.Discover(a.fs, a.workDir)
		if err != nil {
			return "", fmt.Errorf("failed to discover config: %w", err)
		}
		return path, nil
	}
	return a.abs(a.configPath), nil
}

// LoadResolver loads and validates the configuration and resolves its
// extends chain. File extensions are read relative to the config's
// directory; other names come from the registry.
func (a *App) LoadResolver(ctx context.Context) (*resolver.Resolver, error) {
	path, err := a.ConfigPath()
	if err != nil {
		return nil, err
	}

	logging.Get(ctx).Debug().Str("config_path", path).Msg("loading config file")
	cfg, err := config.Load(a.fs, path)
	if err != nil {
		return nil, err //nolint:wrapcheck // config.Load names the file
	}

	fileOpts := []extensions.FileOption{extensions.WithFallback(a.registry)}
	opts := []resolver.Option{}
	if a.strict {
		fileOpts = append(fileOpts, extensions.WithStrict())
		opts = append(opts, resolver.WithStrictExtensions())
	}
	source := extensions.Chain(extensions.NewFileSource(a.fs, cfg.Dir(), fileOpts...), a.registry)
	opts = append(opts, resolver.WithExtensions(source))

	r, err := resolver.New(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return r, nil
}

func (a *App) abs(path string) string {
	if filepath.IsAbs(path) || a.workDir == "" {
		return path
	}
	return filepath.Join(a.workDir, path)
}
