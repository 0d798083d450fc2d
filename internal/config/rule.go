package config

import (
	"fmt"
)

// Severity is the enforcement level of a rule.
type Severity string

const (
	SeverityOff   Severity = "off"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// ParseSeverity accepts exactly "off", "warn" or "error".
func ParseSeverity(value string) (Severity, error) {
	severity := Severity(value)
	if !severity.Valid() {
		return "", fmt.Errorf("%w (got %q)", ErrInvalidSeverity, value)
	}
	return severity, nil
}

// Valid reports whether s is one of the recognized levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityOff, SeverityWarn, SeverityError:
		return true
	default:
		return false
	}
}

func (s Severity) String() string {
	return string(s)
}

// RuleSetting is a severity with the positional options that followed it in
// the source, e.g. ["error", "double", {"avoidEscape": true}].
type RuleSetting struct {
	Severity Severity
	Options  []any
}

// OptionMap returns the first mapping-valued option, or nil.
func (r RuleSetting) OptionMap() map[string]any {
	for _, opt := range r.Options {
		if m, ok := opt.(map[string]any); ok {
			return m
		}
	}
	return nil
}

// Enabled is true for warn and error.
func (r RuleSetting) Enabled() bool {
	return r.Severity == SeverityWarn || r.Severity == SeverityError
}

// Clone returns a copy of r whose options share no slices or maps with r.
func (r RuleSetting) Clone() RuleSetting {
	if r.Options == nil {
		return r
	}
	options, _ := CloneValue(r.Options).([]any)
	return RuleSetting{Severity: r.Severity, Options: options}
}

// CloneValue deep-copies decoded option values: nested []any and
// map[string]any are copied, scalars are returned as is.
func CloneValue(value any) any {
	switch v := value.(type) {
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = CloneValue(item)
		}
		return out
	case map[string]any:
		if v == nil {
			return v
		}
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = CloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Apply layers next on top of r. A setting that only names a severity keeps
// the options of the setting it replaces.
func (r RuleSetting) Apply(next RuleSetting) RuleSetting {
	if len(next.Options) == 0 {
		return RuleSetting{Severity: next.Severity, Options: r.Options}
	}
	return next
}

// MarshalYAML writes the short form when there are no options.
func (r RuleSetting) MarshalYAML() (any, error) {
	if len(r.Options) == 0 {
		return string(r.Severity), nil
	}
	out := make([]any, 0, len(r.Options)+1)
	out = append(out, string(r.Severity))
	return append(out, r.Options...), nil
}

// ParseRuleSetting normalizes a decoded rule value: either a bare severity
// string or a list whose first element is the severity.
func ParseRuleSetting(value any) (RuleSetting, error) {
	switch v := value.(type) {
	case string:
		severity, err := ParseSeverity(v)
		if err != nil {
			return RuleSetting{}, err
		}
		return RuleSetting{Severity: severity}, nil
	case RuleSetting:
		if !v.Severity.Valid() {
			return RuleSetting{}, fmt.Errorf("%w (got %q)", ErrInvalidSeverity, v.Severity)
		}
		return v, nil
	case []any:
		if len(v) == 0 {
			return RuleSetting{}, ErrInvalidRuleSetting
		}
		name, ok := v[0].(string)
		if !ok {
			return RuleSetting{}, fmt.Errorf("%w (got %v)", ErrInvalidSeverity, v[0])
		}
		severity, err := ParseSeverity(name)
		if err != nil {
			return RuleSetting{}, err
		}
		setting := RuleSetting{Severity: severity}
		if len(v) > 1 {
			setting.Options = append([]any(nil), v[1:]...)
		}
		return setting, nil
	case int, int64, uint64, float64:
		return RuleSetting{}, fmt.Errorf("%w (got %v)", ErrInvalidSeverity, v)
	default:
		return RuleSetting{}, ErrInvalidRuleSetting
	}
}

// MergeRules layers each mapping over the previous ones; later layers win.
// The result is always a new map and owns its options.
func MergeRules(layers ...map[string]RuleSetting) map[string]RuleSetting {
	merged := make(map[string]RuleSetting)
	for _, layer := range layers {
		for name, setting := range layer {
			if prev, ok := merged[name]; ok {
				merged[name] = prev.Apply(setting.Clone())
				continue
			}
			merged[name] = setting.Clone()
		}
	}
	return merged
}

// CloneRules deep-copies the mapping, options included.
func CloneRules(rules map[string]RuleSetting) map[string]RuleSetting {
	out := make(map[string]RuleSetting, len(rules))
	for name, setting := range rules {
		out[name] = setting.Clone()
	}
	return out
}
