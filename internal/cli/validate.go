package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/wizzomafizzo/lintrc/internal/resolver"
)

// ValidateConfig loads the configuration and resolves its extends chain,
// returning a one-line summary.
func (a *App) ValidateConfig(ctx context.Context) (string, error) {
	r, err := a.LoadResolver(ctx)
	if err != nil {
		return "", err
	}
	return Summary(r), nil
}

// Summary describes a loaded configuration.
func Summary(r *resolver.Resolver) string {
	cfg := r.Config()
	base := r.BaseRules()

	enabled := 0
	for _, setting := range base {
		if setting.Enabled() {
			enabled++
		}
	}

	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "Configuration is valid: %s\n", cfg.Source)
	_, _ = fmt.Fprintf(&b, "  rules: %d (%d enabled)\n", len(base), enabled)
	_, _ = fmt.Fprintf(&b, "  overrides: %d\n", len(cfg.Overrides))
	_, _ = fmt.Fprintf(&b, "  ignore patterns: %d\n", len(cfg.IgnorePatterns))
	if len(cfg.Extends) > 0 {
		_, _ = fmt.Fprintf(&b, "  extends: %s\n", strings.Join(cfg.Extends, ", "))
	}
	if cfg.Root {
		_, _ = b.WriteString("  root: true\n")
	}
	return b.String()
}
