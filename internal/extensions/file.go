package extensions

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/lintrc/internal/config"
	"github.com/wizzomafizzo/lintrc/internal/logging"
)

// FileSource loads extensions that name another configuration file. Paths
// are resolved relative to the directory of the file that lists them.
type FileSource struct {
	fs       afero.Fs
	fallback Source
	baseDir  string
	strict   bool
}

// FileOption configures a FileSource.
type FileOption func(*FileSource)

// WithFallback resolves non-file names found inside extension files.
func WithFallback(source Source) FileOption {
	return func(s *FileSource) {
		s.fallback = source
	}
}

// WithStrict makes unresolvable nested names an error instead of a warning.
func WithStrict() FileOption {
	return func(s *FileSource) {
		s.strict = true
	}
}

// NewFileSource creates a FileSource rooted at baseDir.
func NewFileSource(fs afero.Fs, baseDir string, opts ...FileOption) *FileSource {
	s := &FileSource{fs: fs, baseDir: baseDir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsFileReference reports whether an extends entry names a file.
func IsFileReference(name string) bool {
	if strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../") || filepath.IsAbs(name) {
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yml", ".yaml", ".json", ".toml":
		return true
	default:
		return false
	}
}

// Rules implements Source. The file's own extends are flattened first, in
// order, and its rules are layered last.
func (s *FileSource) Rules(ctx context.Context, name string) (map[string]config.RuleSetting, error) {
	if !IsFileReference(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, name)
	}
	return s.load(ctx, resolvePath(s.baseDir, name), nil)
}

func (s *FileSource) load(ctx context.Context, path string, stack []string) (map[string]config.RuleSetting, error) {
	if slices.Contains(stack, path) {
		cycle := append(slices.Clone(stack), path)
		return nil, fmt.Errorf("%w: %s", ErrExtensionCycle, strings.Join(cycle, " -> "))
	}
	stack = append(slices.Clone(stack), path)

	cfg, err := config.Load(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("extension %s: %w", path, err)
	}

	layers := make([]map[string]config.RuleSetting, 0, len(cfg.Extends)+1)
	for _, name := range cfg.Extends {
		var rules map[string]config.RuleSetting
		if IsFileReference(name) {
			rules, err = s.load(ctx, resolvePath(filepath.Dir(path), name), stack)
		} else {
			rules, err = s.fromFallback(ctx, path, name)
		}
		if err != nil {
			return nil, err
		}
		if rules != nil {
			layers = append(layers, rules)
		}
	}
	layers = append(layers, cfg.Rules)

	logging.Get(ctx).Debug().
		Str("extension", path).
		Int("rules", len(cfg.Rules)).
		Msg("loaded file extension")

	return config.MergeRules(layers...), nil
}

func (s *FileSource) fromFallback(ctx context.Context, from, name string) (map[string]config.RuleSetting, error) {
	err := fmt.Errorf("%w: %s", ErrUnknownExtension, name)
	if s.fallback != nil {
		var rules map[string]config.RuleSetting
		rules, err = s.fallback.Rules(ctx, name)
		if err == nil {
			return rules, nil
		}
		if !errors.Is(err, ErrUnknownExtension) {
			return nil, err
		}
	}

	if s.strict {
		return nil, fmt.Errorf("%s: extends %q: %w: %v", from, name, ErrUnresolvedExtension, err)
	}

	logging.Get(ctx).Warn().
		Err(err).
		Str("extension", name).
		Str("from", from).
		Msg("skipping unresolved extension")
	return nil, nil
}

func resolvePath(dir, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(dir, filepath.FromSlash(name))
}
