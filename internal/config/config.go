package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/lintrc/internal/constants"
)

// Config is a validated lint configuration. It is built once by Load or
// LoadFromBytes and must not be modified afterwards.
type Config struct {
	Root           bool                   `yaml:"root,omitempty"`
	Parser         string                 `yaml:"parser,omitempty"`
	ParserOptions  map[string]any         `yaml:"parserOptions,omitempty"`
	Plugins        []string               `yaml:"plugins,omitempty"`
	Extends        []string               `yaml:"extends,omitempty"`
	Env            map[string]bool        `yaml:"env,omitempty"`
	Globals        map[string]Global      `yaml:"globals,omitempty"`
	IgnorePatterns []string               `yaml:"ignorePatterns,omitempty"`
	Rules          map[string]RuleSetting `yaml:"rules,omitempty"`
	Overrides      []Override             `yaml:"overrides,omitempty"`
	Source         string                 `yaml:"-"`
	HasParser      bool                   `yaml:"-"` // parser was declared, even as ""
}

// Override adjusts settings for files matching Files but not ExcludedFiles.
type Override struct {
	Files         []string               `yaml:"files"`
	ExcludedFiles []string               `yaml:"excludedFiles,omitempty"`
	Parser        string                 `yaml:"parser,omitempty"`
	ParserOptions map[string]any         `yaml:"parserOptions,omitempty"`
	Plugins       []string               `yaml:"plugins,omitempty"`
	Env           map[string]bool        `yaml:"env,omitempty"`
	Globals       map[string]Global      `yaml:"globals,omitempty"`
	Rules         map[string]RuleSetting `yaml:"rules,omitempty"`
	HasParser     bool                   `yaml:"-"`
}

// Format selects the decoder used for a configuration source.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatForPath picks a format from the file extension. Unknown extensions
// are read as YAML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Load reads and validates the configuration at path.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config, err := LoadFromBytes(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	config.Source = path
	return config, nil
}

// LoadFromBytes decodes and validates an in-memory configuration.
func LoadFromBytes(data []byte, format Format) (*Config, error) {
	raw, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	config, err := raw.normalize()
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Discover walks from dir towards the filesystem root and returns the first
// configuration file it finds. Parent configurations are not merged.
func Discover(fs afero.Fs, dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	for {
		for _, name := range constants.ConfigFilenames {
			candidate := filepath.Join(current, name)
			exists, err := afero.Exists(fs, candidate)
			if err != nil {
				return "", fmt.Errorf("failed to stat %s: %w", candidate, err)
			}
			if exists {
				return candidate, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w in %s or any parent directory", ErrConfigNotFound, dir)
		}
		current = parent
	}
}

// Dir returns the directory the configuration was loaded from, or "" for
// in-memory configurations.
func (c *Config) Dir() string {
	if c.Source == "" {
		return ""
	}
	return filepath.Dir(c.Source)
}
