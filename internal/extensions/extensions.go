// Package extensions resolves the names listed under "extends" into rule
// bundles. The resolver only needs a Source; where bundles come from (files
// next to the configuration, an in-memory registry, or both) is up to the
// caller.
package extensions

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wizzomafizzo/lintrc/internal/config"
)

var (
	ErrUnknownExtension = errors.New("unknown extension")
	ErrExtensionCycle   = errors.New("extension cycle")

	// ErrUnresolvedExtension is returned in strict mode when a file
	// extension itself extends a name no source can resolve.
	ErrUnresolvedExtension = errors.New("unresolved extension")
)

// Source returns the rule defaults contributed by a named extension. It
// returns an error wrapping ErrUnknownExtension when the name is not one it
// handles.
type Source interface {
	Rules(ctx context.Context, name string) (map[string]config.RuleSetting, error)
}

// Registry is an in-memory Source. It is safe for concurrent use.
type Registry struct {
	bundles map[string]map[string]config.RuleSetting
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bundles: make(map[string]map[string]config.RuleSetting)}
}

// Register stores (or replaces) the bundle for name. Severities are checked
// so a bad bundle fails here rather than during resolution.
func (r *Registry) Register(name string, rules map[string]config.RuleSetting) error {
	if name == "" {
		return errors.New("extension name cannot be empty")
	}
	for rule, setting := range rules {
		if !setting.Severity.Valid() {
			return fmt.Errorf("extension %s: rule %s: %w", name, rule, config.ErrInvalidSeverity)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bundles[name] = config.CloneRules(rules)
	return nil
}

// Rules implements Source.
func (r *Registry) Rules(_ context.Context, name string) (map[string]config.RuleSetting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bundle, ok := r.bundles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, name)
	}
	return config.CloneRules(bundle), nil
}

// Names lists registered extensions in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.bundles))
	for name := range r.bundles {
		names = append(names, name)
	}
	return names
}

type chain []Source

// Chain asks each source in turn and returns the first answer that is not
// ErrUnknownExtension.
func Chain(sources ...Source) Source {
	return chain(sources)
}

func (c chain) Rules(ctx context.Context, name string) (map[string]config.RuleSetting, error) {
	for _, source := range c {
		if source == nil {
			continue
		}
		rules, err := source.Rules(ctx, name)
		if errors.Is(err, ErrUnknownExtension) {
			continue
		}
		return rules, err
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, name)
}
