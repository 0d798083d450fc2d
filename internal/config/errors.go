package config

import "errors"

var (
	ErrInvalidSeverity    = errors.New("invalid severity: must be one of off, warn, error")
	ErrInvalidRuleSetting = errors.New("rule setting must be a severity or a [severity, options...] list")
	ErrEmptyFiles         = errors.New("override files must contain at least one pattern")
	ErrEmptyParser        = errors.New("parser is declared but empty")
	ErrInvalidPattern     = errors.New("invalid glob pattern")
	ErrNegatedFiles       = errors.New("negated patterns are not allowed in override files")
	ErrInvalidGlobal      = errors.New("invalid global: must be one of readonly, writable, off")
	ErrInvalidList        = errors.New("value must be a string or a list of strings")
	ErrMalformedConfig    = errors.New("malformed configuration")
	ErrConfigNotFound     = errors.New("no configuration file found")
)

// ValidationError reports a malformed configuration. Field is a dotted path
// into the source document (for example "overrides[1].rules.eqeqeq") and is
// empty when the whole document is at fault.
type ValidationError struct {
	Err   error
	Field string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}
