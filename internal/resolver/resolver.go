// Package resolver turns a loaded configuration into per-file answers: the
// effective rule mapping and whether the file is ignored.
//
// Precedence, lowest to highest:
//
//	extensions (in extends order) < config rules < matching overrides (in order)
//
// A Resolver is immutable once built and may be shared between goroutines.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/wizzomafizzo/lintrc/internal/config"
	"github.com/wizzomafizzo/lintrc/internal/extensions"
	"github.com/wizzomafizzo/lintrc/internal/logging"
	"github.com/wizzomafizzo/lintrc/internal/matcher"
)

// ErrNotAFile is returned for paths that name the base directory itself.
var ErrNotAFile = errors.New("path does not name a file")

// PathError reports a path that cannot be used for glob matching.
type PathError struct {
	Err  error
	Path string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path %q: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Resolver answers per-file queries against one configuration.
type Resolver struct {
	config    *config.Config
	baseRules map[string]config.RuleSetting
	ignore    *matcher.Set
	baseDir   string
	overrides []compiledOverride
}

type compiledOverride struct {
	files    *matcher.Set
	excluded *matcher.Set
	override config.Override
}

type options struct {
	source  extensions.Source
	baseDir string
	strict  bool
}

// Option configures New.
type Option func(*options)

// WithExtensions sets where extends names are resolved. Without it the
// extends list is recorded but contributes no rules.
func WithExtensions(source extensions.Source) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithStrictExtensions fails New when an extends name cannot be resolved.
// By default such names are logged and skipped.
func WithStrictExtensions() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithBaseDir sets the directory absolute query paths are made relative to.
// It defaults to the directory of cfg.Source.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.baseDir = dir
	}
}

// New validates cfg, compiles its globs and resolves its extensions.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	o := options{baseDir: cfg.Dir()}
	for _, opt := range opts {
		opt(&o)
	}

	logger := logging.Get(ctx)

	r := &Resolver{config: cfg}
	if o.baseDir != "" {
		abs, err := filepath.Abs(o.baseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve base directory %s: %w", o.baseDir, err)
		}
		r.baseDir = abs
	}

	var err error
	if r.ignore, err = matcher.NewSet(cfg.IgnorePatterns); err != nil {
		return nil, fmt.Errorf("failed to compile ignorePatterns: %w", err)
	}

	for i, override := range cfg.Overrides {
		compiled := compiledOverride{override: override}
		if compiled.files, err = matcher.NewSet(override.Files); err != nil {
			return nil, fmt.Errorf("failed to compile overrides[%d].files: %w", i, err)
		}
		if compiled.excluded, err = matcher.NewSet(override.ExcludedFiles); err != nil {
			return nil, fmt.Errorf("failed to compile overrides[%d].excludedFiles: %w", i, err)
		}
		r.overrides = append(r.overrides, compiled)
	}

	layers := make([]map[string]config.RuleSetting, 0, len(cfg.Extends)+1)
	for _, name := range cfg.Extends {
		rules, err := resolveExtension(ctx, o, name)
		if err != nil {
			return nil, err
		}
		if rules != nil {
			layers = append(layers, rules)
		}
	}
	layers = append(layers, cfg.Rules)
	r.baseRules = config.MergeRules(layers...)

	logger.Debug().
		Str("config", cfg.Source).
		Int("rules", len(r.baseRules)).
		Int("overrides", len(r.overrides)).
		Int("ignore_patterns", r.ignore.Len()).
		Msg("resolver ready")

	return r, nil
}

func resolveExtension(ctx context.Context, o options, name string) (map[string]config.RuleSetting, error) {
	logger := logging.Get(ctx)

	if o.source == nil {
		if o.strict {
			return nil, fmt.Errorf("extends %q: %w: no extension source configured", name, extensions.ErrUnknownExtension)
		}
		logger.Debug().Str("extension", name).Msg("no extension source, extends entry recorded only")
		return nil, nil
	}

	rules, err := o.source.Rules(ctx, name)
	if err == nil {
		logger.Debug().Str("extension", name).Int("rules", len(rules)).Msg("merged extension")
		return rules, nil
	}
	if errors.Is(err, extensions.ErrUnknownExtension) && !o.strict {
		logger.Warn().Err(err).Str("extension", name).Msg("skipping unresolved extension")
		return nil, nil
	}
	return nil, fmt.Errorf("extends %q: %w", name, err)
}

// Config returns the configuration the resolver was built from.
func (r *Resolver) Config() *config.Config {
	return r.config
}

// BaseRules returns the rule mapping before overrides: extensions merged in
// order with the configuration's own rules on top.
func (r *Resolver) BaseRules() map[string]config.RuleSetting {
	return config.CloneRules(r.baseRules)
}

// EffectiveRules returns the rules that apply to filePath. Matching overrides
// are applied in declaration order, so the last one to set a rule wins.
func (r *Resolver) EffectiveRules(filePath string) (map[string]config.RuleSetting, error) {
	rel, inside, err := r.relative(filePath)
	if err != nil {
		return nil, err
	}

	layers := []map[string]config.RuleSetting{r.baseRules}
	if inside {
		for i := range r.overrides {
			if r.overrides[i].matches(rel) {
				layers = append(layers, r.overrides[i].override.Rules)
			}
		}
	}
	return config.MergeRules(layers...), nil
}

// IsIgnored reports whether filePath matches the ignore patterns.
func (r *Resolver) IsIgnored(filePath string) (bool, error) {
	rel, inside, err := r.relative(filePath)
	if err != nil {
		return false, err
	}
	if !inside {
		return false, nil
	}
	return r.ignore.Ignored(rel), nil
}

// MatchingOverrides returns the indexes of overrides that apply to filePath,
// in application order.
func (r *Resolver) MatchingOverrides(filePath string) ([]int, error) {
	rel, inside, err := r.relative(filePath)
	if err != nil {
		return nil, err
	}
	var matched []int
	if !inside {
		return matched, nil
	}
	for i := range r.overrides {
		if r.overrides[i].matches(rel) {
			matched = append(matched, i)
		}
	}
	return matched, nil
}

func (o *compiledOverride) matches(rel string) bool {
	return o.files.Any(rel) && !o.excluded.Any(rel)
}

// relative normalizes filePath for matching. inside is false for paths that
// resolve outside the base directory; those match no pattern.
func (r *Resolver) relative(filePath string) (rel string, inside bool, err error) {
	normalized, err := matcher.Normalize(filePath)
	if err != nil {
		return "", false, &PathError{Path: filePath, Err: err}
	}

	if path.IsAbs(normalized) || filepath.IsAbs(filePath) {
		if r.baseDir == "" {
			trimmed := strings.TrimLeft(normalized, "/")
			if trimmed == "" {
				return "", false, &PathError{Path: filePath, Err: ErrNotAFile}
			}
			return trimmed, true, nil
		}
		relPath, relErr := filepath.Rel(r.baseDir, filepath.FromSlash(normalized))
		if relErr != nil {
			return "", false, nil
		}
		normalized = filepath.ToSlash(relPath)
	}

	if normalized == ".." || strings.HasPrefix(normalized, "../") {
		return "", false, nil
	}
	if normalized == "." {
		return "", false, &PathError{Path: filePath, Err: ErrNotAFile}
	}
	return normalized, true, nil
}
