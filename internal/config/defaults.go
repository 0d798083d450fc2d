package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the starter configuration written by "lintrc init".
func DefaultConfig() *Config {
	return &Config{
		Root:      true,
		Parser:    "@typescript-eslint/parser",
		HasParser: true,
		Plugins:   []string{"@typescript-eslint"},
		Extends:   []string{"eslint:recommended", "plugin:@typescript-eslint/recommended"},
		ParserOptions: map[string]any{
			"ecmaVersion": 2022,
			"sourceType":  "module",
		},
		Env: map[string]bool{
			"node": true,
			"es6":  true,
		},
		IgnorePatterns: []string{"dist/", "node_modules/", "coverage/"},
		Rules: map[string]RuleSetting{
			"eqeqeq":         {Severity: SeverityError},
			"no-console":     {Severity: SeverityWarn},
			"no-unused-vars": {Severity: SeverityOff},
			"quotes":         {Severity: SeverityError, Options: []any{"single", map[string]any{"avoidEscape": true}}},
			"@typescript-eslint/no-unused-vars": {
				Severity: SeverityError,
				Options:  []any{map[string]any{"argsIgnorePattern": "^_"}},
			},
		},
		Overrides: []Override{
			{
				Files: []string{"**/*.test.ts", "**/*.spec.ts"},
				Env:   map[string]bool{"jest": true},
				Rules: map[string]RuleSetting{
					"no-console": {Severity: SeverityOff},
					"@typescript-eslint/no-explicit-any": {Severity: SeverityOff},
				},
			},
		},
	}
}

// DefaultConfigYAML returns the default configuration as YAML bytes
func DefaultConfigYAML() ([]byte, error) {
	config := DefaultConfig()
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default config to YAML: %w", err)
	}
	return data, nil
}
