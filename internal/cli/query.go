package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/wizzomafizzo/lintrc/internal/config"
	"github.com/wizzomafizzo/lintrc/internal/logging"
	"github.com/wizzomafizzo/lintrc/internal/resolver"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// FileResult is the answer for one queried path.
type FileResult struct {
	Rules   map[string]config.RuleSetting
	Path    string
	Ignored bool
}

// Query resolves every path concurrently. Results are returned in argument
// order; the first failing path cancels the rest.
func (a *App) Query(ctx context.Context, paths []string) ([]FileResult, error) {
	r, err := a.LoadResolver(ctx)
	if err != nil {
		return nil, err
	}
	return a.query(ctx, r, paths)
}

func (a *App) query(ctx context.Context, r *resolver.Resolver, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint:wrapcheck // cancellation from a sibling
			}

			target := a.abs(path)
			rules, err := r.EffectiveRules(target)
			if err != nil {
				return fmt.Errorf("failed to resolve rules for %s: %w", path, err)
			}
			ignored, err := r.IsIgnored(target)
			if err != nil {
				return fmt.Errorf("failed to check ignore patterns for %s: %w", path, err)
			}

			results[i] = FileResult{Path: path, Rules: rules, Ignored: ignored}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // wrapped per path above
	}

	logging.Get(ctx).Debug().Int("paths", len(paths)).Msg("resolved paths")
	return results, nil
}

// PrintConfig returns the full per-file configuration of path as YAML.
func (a *App) PrintConfig(ctx context.Context, path string) (string, error) {
	r, err := a.LoadResolver(ctx)
	if err != nil {
		return "", err
	}

	fc, err := r.ConfigFor(a.abs(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve config for %s: %w", path, err)
	}

	out, err := yaml.Marshal(fc)
	if err != nil {
		return "", fmt.Errorf("failed to encode config for %s: %w", path, err)
	}
	return string(out), nil
}
