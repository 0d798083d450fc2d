package matcher

import "fmt"

// Set is an ordered list of compiled patterns.
type Set struct {
	patterns []*Pattern
}

// PatternError identifies which entry of a list failed to compile.
type PatternError struct {
	Err     error
	Pattern string
	Index   int
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern %d (%q): %v", e.Index, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// NewSet compiles patterns in order.
func NewSet(patterns []string) (*Set, error) {
	s := &Set{patterns: make([]*Pattern, 0, len(patterns))}
	for i, raw := range patterns {
		p, err := Compile(raw)
		if err != nil {
			return nil, &PatternError{Index: i, Pattern: raw, Err: err}
		}
		s.patterns = append(s.patterns, p)
	}
	return s, nil
}

// Len returns the number of patterns.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Any reports whether any non-negated pattern matches name.
func (s *Set) Any(name string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.patterns {
		if !p.negate && p.Match(name) {
			return true
		}
	}
	return false
}

// Ignored applies ignore-file semantics: patterns are tried in order, each
// match (of the path or a parent directory) sets the outcome, and negated
// patterns re-include. A file inside an ignored directory cannot be
// re-included by a negated pattern naming the file; the directory has to be
// re-included first.
func (s *Set) Ignored(name string) bool {
	if s == nil {
		return false
	}
	ignored, parentIgnored := false, false
	for _, p := range s.patterns {
		switch {
		case p.matchesParent(name):
			ignored = !p.negate
			parentIgnored = !p.negate
		case p.Match(name):
			if p.negate && parentIgnored {
				continue
			}
			ignored = !p.negate
		}
	}
	return ignored
}
