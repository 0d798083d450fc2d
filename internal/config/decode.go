package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// rawConfig mirrors the source document. Fields that accept more than one
// shape are decoded as any and normalized afterwards.
type rawConfig struct {
	Parser         *string         `yaml:"parser" toml:"parser"`
	ParserOptions  map[string]any  `yaml:"parserOptions" toml:"parserOptions"`
	Env            map[string]bool `yaml:"env" toml:"env"`
	Globals        map[string]any  `yaml:"globals" toml:"globals"`
	Rules          map[string]any  `yaml:"rules" toml:"rules"`
	Extends        any             `yaml:"extends" toml:"extends"`
	IgnorePatterns any             `yaml:"ignorePatterns" toml:"ignorePatterns"`
	Plugins        []string        `yaml:"plugins" toml:"plugins"`
	Overrides      []rawOverride   `yaml:"overrides" toml:"overrides"`
	Root           bool            `yaml:"root" toml:"root"`
}

type rawOverride struct {
	Parser        *string         `yaml:"parser" toml:"parser"`
	ParserOptions map[string]any  `yaml:"parserOptions" toml:"parserOptions"`
	Env           map[string]bool `yaml:"env" toml:"env"`
	Globals       map[string]any  `yaml:"globals" toml:"globals"`
	Rules         map[string]any  `yaml:"rules" toml:"rules"`
	Files         any             `yaml:"files" toml:"files"`
	ExcludedFiles any             `yaml:"excludedFiles" toml:"excludedFiles"`
	Plugins       []string        `yaml:"plugins" toml:"plugins"`
}

func decode(data []byte, format Format) (*rawConfig, error) {
	var raw rawConfig

	switch format {
	case FormatTOML:
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&raw); err != nil {
			return nil, invalid("", fmt.Errorf("%w: %v", ErrMalformedConfig, err))
		}
	case FormatYAML, FormatJSON:
		// JSON documents are valid YAML flow syntax.
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, invalid("", fmt.Errorf("%w: %v", ErrMalformedConfig, err))
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	return &raw, nil
}

func (r *rawConfig) normalize() (*Config, error) {
	config := &Config{
		Root:          r.Root,
		ParserOptions: r.ParserOptions,
		Env:           r.Env,
		Plugins:       dedupe(r.Plugins),
	}

	parser, err := normalizeParser("parser", r.Parser)
	if err != nil {
		return nil, err
	}
	config.Parser = parser
	config.HasParser = r.Parser != nil

	if config.Extends, err = stringList("extends", r.Extends); err != nil {
		return nil, err
	}
	if config.IgnorePatterns, err = stringList("ignorePatterns", r.IgnorePatterns); err != nil {
		return nil, err
	}
	if config.Globals, err = normalizeGlobals("globals", r.Globals); err != nil {
		return nil, err
	}
	if config.Rules, err = normalizeRules("rules", r.Rules); err != nil {
		return nil, err
	}

	for i, ro := range r.Overrides {
		override, err := ro.normalize(fmt.Sprintf("overrides[%d]", i))
		if err != nil {
			return nil, err
		}
		config.Overrides = append(config.Overrides, override)
	}

	return config, nil
}

func (r *rawOverride) normalize(field string) (Override, error) {
	override := Override{
		ParserOptions: r.ParserOptions,
		Env:           r.Env,
		Plugins:       dedupe(r.Plugins),
	}

	var err error
	if override.Parser, err = normalizeParser(field+".parser", r.Parser); err != nil {
		return Override{}, err
	}
	override.HasParser = r.Parser != nil
	if override.Files, err = stringList(field+".files", r.Files); err != nil {
		return Override{}, err
	}
	if override.ExcludedFiles, err = stringList(field+".excludedFiles", r.ExcludedFiles); err != nil {
		return Override{}, err
	}
	if override.Globals, err = normalizeGlobals(field+".globals", r.Globals); err != nil {
		return Override{}, err
	}
	if override.Rules, err = normalizeRules(field+".rules", r.Rules); err != nil {
		return Override{}, err
	}
	return override, nil
}

func normalizeParser(field string, value *string) (string, error) {
	if value == nil {
		return "", nil
	}
	if *value == "" {
		return "", invalid(field, ErrEmptyParser)
	}
	return *value, nil
}

func normalizeRules(field string, raw map[string]any) (map[string]RuleSetting, error) {
	if raw == nil {
		return nil, nil
	}
	rules := make(map[string]RuleSetting, len(raw))
	for _, name := range sortedKeys(raw) {
		setting, err := ParseRuleSetting(raw[name])
		if err != nil {
			return nil, invalid(field+"."+name, err)
		}
		rules[name] = setting
	}
	return rules, nil
}

func normalizeGlobals(field string, raw map[string]any) (map[string]Global, error) {
	if raw == nil {
		return nil, nil
	}
	globals := make(map[string]Global, len(raw))
	for _, name := range sortedKeys(raw) {
		g, err := ParseGlobal(raw[name])
		if err != nil {
			return nil, invalid(field+"."+name, err)
		}
		globals[name] = g
	}
	return globals, nil
}

// stringList accepts a single string or a sequence of strings.
func stringList(field string, value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(fmt.Sprintf("%s[%d]", field, i), ErrInvalidList)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, invalid(field, ErrInvalidList)
	}
}

func dedupe(values []string) []string {
	if values == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
