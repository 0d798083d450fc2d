package resolver

import (
	"context"
	"maps"
	"slices"

	"github.com/wizzomafizzo/lintrc/internal/config"
)

// FileConfig is everything the configuration says about one file.
type FileConfig struct {
	Parser        string                        `yaml:"parser,omitempty"`
	ParserOptions map[string]any                `yaml:"parserOptions,omitempty"`
	Plugins       []string                      `yaml:"plugins,omitempty"`
	Env           map[string]bool               `yaml:"env,omitempty"`
	Globals       map[string]config.Global      `yaml:"globals,omitempty"`
	Rules         map[string]config.RuleSetting `yaml:"rules"`
}

// ConfigFor layers every matching override over the base settings. Parser
// is replaced, parserOptions are merged recursively, env and globals are
// merged by key and plugins are unioned.
func (r *Resolver) ConfigFor(filePath string) (*FileConfig, error) {
	indexes, err := r.MatchingOverrides(filePath)
	if err != nil {
		return nil, err
	}

	fc := &FileConfig{
		Parser:        r.config.Parser,
		ParserOptions: mergeOptions(nil, r.config.ParserOptions),
		Plugins:       append([]string(nil), r.config.Plugins...),
		Env:           maps.Clone(r.config.Env),
		Globals:       maps.Clone(r.config.Globals),
	}

	layers := []map[string]config.RuleSetting{r.baseRules}
	for _, i := range indexes {
		o := r.overrides[i].override
		if o.Parser != "" {
			fc.Parser = o.Parser
		}
		fc.ParserOptions = mergeOptions(fc.ParserOptions, o.ParserOptions)
		fc.Plugins = union(fc.Plugins, o.Plugins)
		fc.Env = mergeMap(fc.Env, o.Env)
		fc.Globals = mergeMap(fc.Globals, o.Globals)
		layers = append(layers, o.Rules)
	}
	fc.Rules = config.MergeRules(layers...)

	return fc, nil
}

// EffectiveRules is a one-shot form of Resolver.EffectiveRules that builds a
// resolver without extension resolution.
func EffectiveRules(cfg *config.Config, filePath string) (map[string]config.RuleSetting, error) {
	r, err := New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	return r.EffectiveRules(filePath)
}

// IsIgnored is a one-shot form of Resolver.IsIgnored.
func IsIgnored(cfg *config.Config, filePath string) (bool, error) {
	r, err := New(context.Background(), cfg)
	if err != nil {
		return false, err
	}
	return r.IsIgnored(filePath)
}

func mergeOptions(dst, src map[string]any) map[string]any {
	if dst == nil && src == nil {
		return nil
	}
	out := make(map[string]any, len(dst)+len(src))
	maps.Copy(out, dst)
	for key, value := range src {
		next, nextIsMap := value.(map[string]any)
		prev, prevIsMap := out[key].(map[string]any)
		switch {
		case nextIsMap && prevIsMap:
			out[key] = mergeOptions(prev, next)
		case nextIsMap:
			out[key] = mergeOptions(nil, next)
		default:
			out[key] = config.CloneValue(value)
		}
	}
	return out
}

func mergeMap[V any](dst, src map[string]V) map[string]V {
	if len(src) == 0 {
		return dst
	}
	out := make(map[string]V, len(dst)+len(src))
	maps.Copy(out, dst)
	maps.Copy(out, src)
	return out
}

func union(dst, src []string) []string {
	for _, s := range src {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}
