package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wizzomafizzo/lintrc/internal/matcher"
)

// Validate checks every severity, parser declaration and glob in the
// configuration. Load calls it; callers that build a Config by hand should
// too.
func (c *Config) Validate() error {
	if emptyParser(c.Parser, c.HasParser) {
		return invalid("parser", ErrEmptyParser)
	}

	if err := validateRules("rules", c.Rules); err != nil {
		return err
	}
	if err := validateGlobals("globals", c.Globals); err != nil {
		return err
	}
	if err := validatePatterns("ignorePatterns", c.IgnorePatterns, true); err != nil {
		return err
	}

	for i := range c.Overrides {
		if err := c.Overrides[i].validate(fmt.Sprintf("overrides[%d]", i)); err != nil {
			return err
		}
	}

	return nil
}

func (o *Override) validate(field string) error {
	if len(o.Files) == 0 {
		return invalid(field+".files", ErrEmptyFiles)
	}
	if emptyParser(o.Parser, o.HasParser) {
		return invalid(field+".parser", ErrEmptyParser)
	}
	if err := validatePatterns(field+".files", o.Files, false); err != nil {
		return err
	}
	if err := validatePatterns(field+".excludedFiles", o.ExcludedFiles, false); err != nil {
		return err
	}
	if err := validateGlobals(field+".globals", o.Globals); err != nil {
		return err
	}
	return validateRules(field+".rules", o.Rules)
}

func validateRules(field string, rules map[string]RuleSetting) error {
	for _, name := range sortedKeys(rules) {
		if severity := rules[name].Severity; !severity.Valid() {
			return invalid(field+"."+name, fmt.Errorf("%w (got %q)", ErrInvalidSeverity, severity))
		}
	}
	return nil
}

func validateGlobals(field string, globals map[string]Global) error {
	for _, name := range sortedKeys(globals) {
		switch globals[name] {
		case GlobalReadonly, GlobalWritable, GlobalOff:
		default:
			return invalid(field+"."+name, fmt.Errorf("%w (got %q)", ErrInvalidGlobal, globals[name]))
		}
	}
	return nil
}

func validatePatterns(field string, patterns []string, allowNegation bool) error {
	_, err := matcher.NewSet(patterns)
	if err != nil {
		var patternErr *matcher.PatternError
		if errors.As(err, &patternErr) {
			return invalid(fmt.Sprintf("%s[%d]", field, patternErr.Index),
				fmt.Errorf("%w %q: %v", ErrInvalidPattern, patternErr.Pattern, patternErr.Err))
		}
		return invalid(field, fmt.Errorf("%w: %v", ErrInvalidPattern, err))
	}

	if allowNegation {
		return nil
	}
	for i, p := range patterns {
		if strings.HasPrefix(p, "!") {
			return invalid(fmt.Sprintf("%s[%d]", field, i), ErrNegatedFiles)
		}
	}
	return nil
}

// emptyParser is true for a parser that was declared but names nothing.
func emptyParser(parser string, declared bool) bool {
	return (declared || parser != "") && strings.TrimSpace(parser) == ""
}
