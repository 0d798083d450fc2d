package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/lintrc/internal/cli"
	"github.com/wizzomafizzo/lintrc/internal/config"
	"gopkg.in/yaml.v3"
)

// palette holds the colours for one command invocation; --no-color
// disables these instances only.
type palette struct {
	path *color.Color
	off  *color.Color
	warn *color.Color
	fail *color.Color
	ok   *color.Color
}

func newPalette(cmd *cobra.Command) palette {
	p := palette{
		path: color.New(color.Bold),
		off:  color.New(color.Faint),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed, color.Bold),
		ok:   color.New(color.FgGreen),
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		for _, c := range []*color.Color{p.path, p.off, p.warn, p.fail, p.ok} {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s config.Severity) string {
	label := fmt.Sprintf("%-5s", s)
	switch s {
	case config.SeverityError:
		return p.fail.Sprint(label)
	case config.SeverityWarn:
		return p.warn.Sprint(label)
	default:
		return p.off.Sprint(label)
	}
}

func writeRules(w io.Writer, p palette, result cli.FileResult) error {
	if result.Ignored {
		_, err := fmt.Fprintf(w, "%s %s\n", p.path.Sprint(result.Path), p.off.Sprint("(ignored)"))
		return err //nolint:wrapcheck // writer errors are reported by the caller
	}

	if _, err := fmt.Fprintln(w, p.path.Sprint(result.Path)); err != nil {
		return err //nolint:wrapcheck // writer errors are reported by the caller
	}

	names := make([]string, 0, len(result.Rules))
	width := 0
	for name := range result.Rules {
		names = append(names, name)
		width = max(width, len(name))
	}
	slices.Sort(names)

	for _, name := range names {
		setting := result.Rules[name]
		line := fmt.Sprintf("  %-*s  %s", width, name, p.severity(setting.Severity))
		if len(setting.Options) > 0 {
			options, err := inlineOptions(setting.Options)
			if err != nil {
				return fmt.Errorf("failed to render options for %s: %w", name, err)
			}
			line += "  " + options
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err //nolint:wrapcheck // writer errors are reported by the caller
		}
	}
	return nil
}

// inlineOptions renders rule options as single-line YAML flow syntax.
func inlineOptions(options []any) (string, error) {
	var node yaml.Node
	if err := node.Encode(options); err != nil {
		return "", fmt.Errorf("failed to encode options: %w", err)
	}
	setFlowStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return "", fmt.Errorf("failed to marshal options: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func setFlowStyle(node *yaml.Node) {
	if node.Kind == yaml.SequenceNode || node.Kind == yaml.MappingNode {
		node.Style = yaml.FlowStyle
	}
	for _, child := range node.Content {
		setFlowStyle(child)
	}
}
