// Package matcher compiles the glob patterns used by override "files" and
// "ignorePatterns" and matches them against slash-separated relative paths.
//
// Pattern rules:
//   - a pattern without "/" is matched against the base name ("*.ts")
//   - "**" spans directories; a leading "**/" or inner "/**/" may match zero
//     directories, so "**/*.spec.ts" matches "x.spec.ts"
//   - a trailing "/" matches everything under a directory ("dist/")
//   - a leading "/" anchors the pattern at the base directory
//   - a leading "!" negates the pattern (ignore lists only)
package matcher

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"
)

const separator = '/'

var (
	ErrEmptyPattern = errors.New("pattern is empty")
	ErrEmptyPath    = errors.New("path is empty")
	ErrInvalidPath  = errors.New("path contains a NUL byte or invalid UTF-8")
)

// Pattern is one compiled glob.
type Pattern struct {
	raw      string
	globs    []glob.Glob
	negate   bool
	baseName bool
	dir      bool
}

// Compile parses a single glob pattern.
func Compile(pattern string) (*Pattern, error) {
	p := &Pattern{raw: pattern}

	expr := pattern
	if rest, ok := strings.CutPrefix(expr, "!"); ok {
		p.negate = true
		expr = rest
	}
	expr = strings.TrimPrefix(expr, "./")

	anchored := strings.HasPrefix(expr, "/")
	expr = strings.TrimLeft(expr, "/")
	if dir, ok := strings.CutSuffix(expr, "/"); ok {
		p.dir = true
		if !anchored && !strings.Contains(dir, "/") {
			expr = "**/" + expr
		}
		expr += "**"
	}
	if expr == "" {
		return nil, ErrEmptyPattern
	}
	p.baseName = !anchored && !strings.Contains(expr, "/")

	for _, variant := range expand(expr) {
		g, err := glob.Compile(variant, separator)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", pattern, err)
		}
		p.globs = append(p.globs, g)
	}
	return p, nil
}

// String returns the pattern as written.
func (p *Pattern) String() string { return p.raw }

// Negated reports whether the pattern started with "!".
func (p *Pattern) Negated() bool { return p.negate }

// Match reports whether the normalized relative path matches.
func (p *Pattern) Match(name string) bool {
	target := name
	if p.baseName {
		target = path.Base(name)
	}
	for _, g := range p.globs {
		if g.Match(target) {
			return true
		}
	}
	return false
}

// MatchOrParent reports whether name or any of its parent directories
// matches, the way ignore files treat a directory entry.
func (p *Pattern) MatchOrParent(name string) bool {
	return p.Match(name) || p.matchesParent(name)
}

// matchesParent reports whether the pattern excludes a directory containing
// name. A trailing "/" pattern only ever matches directory contents.
func (p *Pattern) matchesParent(name string) bool {
	if p.dir && p.Match(name) {
		return true
	}
	for dir := path.Dir(name); dir != "." && dir != "/" && dir != ""; dir = path.Dir(dir) {
		if p.Match(dir) {
			return true
		}
	}
	return false
}

// expand returns the pattern plus every variant in which non-trailing "**"
// segments are dropped, so that they also match zero directories.
func expand(expr string) []string {
	segments := strings.Split(expr, "/")
	variants := [][]string{nil}
	for i, seg := range segments {
		optional := seg == "**" && i < len(segments)-1
		next := make([][]string, 0, len(variants)*2)
		for _, v := range variants {
			next = append(next, append(append([]string(nil), v...), seg))
			if optional {
				next = append(next, v)
			}
		}
		variants = next
	}

	seen := make(map[string]struct{}, len(variants))
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		joined := strings.Join(v, "/")
		if joined == "" {
			continue
		}
		if _, dup := seen[joined]; dup {
			continue
		}
		seen[joined] = struct{}{}
		out = append(out, joined)
	}
	return out
}

// Normalize converts a path to the clean, slash-separated form patterns are
// matched against.
func Normalize(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyPath
	}
	if strings.ContainsRune(name, 0) || !utf8.ValidString(name) {
		return "", ErrInvalidPath
	}
	return path.Clean(filepath.ToSlash(name)), nil
}
