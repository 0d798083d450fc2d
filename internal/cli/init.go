package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/lintrc/internal/config"
	"github.com/wizzomafizzo/lintrc/internal/constants"
)

// ErrConfigExists is returned by Initialize when the target file is present
// and force is not set.
var ErrConfigExists = errors.New("config file already exists")

// Initialize writes the default configuration. Without an explicit config
// path it is created as .lintrc.yml in the working directory.
func (a *App) Initialize(force bool) (string, error) {
	path := a.configPath
	if path == "" {
		path = constants.DefaultConfigFilename
	}
	path = a.abs(path)
	if format := config.FormatForPath(path); format != config.FormatYAML {
		return "", fmt.Errorf("cannot write %s: default config is YAML, not %s", path, format)
	}

	exists, err := afero.Exists(a.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if exists && !force {
		return "", fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	data, err := config.DefaultConfigYAML()
	if err != nil {
		return "", fmt.Errorf("failed to render default config: %w", err)
	}
	if err := a.fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(a.fs, path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
