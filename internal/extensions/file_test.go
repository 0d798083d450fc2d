package extensions

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/lintrc/internal/config"
	testutil "github.com/wizzomafizzo/lintrc/internal/testing"
)

func writeFiles(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o600))
	}
	return fs
}

func TestIsFileReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "relative", input: "./base.yml", want: true},
		{name: "parent", input: "../shared/lint.json", want: true},
		{name: "absolute", input: "/etc/lintrc/base.toml", want: true},
		{name: "bare file name", input: "strict.yaml", want: true},
		{name: "named bundle", input: "eslint:recommended", want: false},
		{name: "plugin bundle", input: "plugin:react/recommended", want: false},
		{name: "package", input: "airbnb-base", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsFileReference(tt.input))
		})
	}
}

func TestFileSourceFlattensNestedExtends(t *testing.T) {
	t.Parallel()

	fs := writeFiles(t, map[string]string{
		"/repo/config/base.yml": `
extends: ./core.yml
rules:
  semi: warn
  quotes: [error, double]
`,
		"/repo/config/core.yml": `
rules:
  semi: error
  eqeqeq: error
  quotes: [warn, single]
`,
	})

	source := NewFileSource(fs, "/repo")
	rules, err := source.Rules(context.Background(), "./config/base.yml")
	require.NoError(t, err)

	assert.Equal(t, map[string]config.RuleSetting{
		"semi":   {Severity: config.SeverityWarn},
		"eqeqeq": {Severity: config.SeverityError},
		"quotes": {Severity: config.SeverityError, Options: []any{"double"}},
	}, rules)
}

func TestFileSourceUsesFallbackForNamedBundles(t *testing.T) {
	t.Parallel()

	fs := writeFiles(t, map[string]string{
		"/repo/base.yml": "extends: [eslint:recommended]\nrules:\n  no-undef: warn\n",
	})
	registry := NewRegistry()
	require.NoError(t, registry.Register("eslint:recommended", map[string]config.RuleSetting{
		"no-undef":    {Severity: config.SeverityError},
		"no-debugger": {Severity: config.SeverityError},
	}))

	rules, err := NewFileSource(fs, "/repo", WithFallback(registry)).Rules(context.Background(), "./base.yml")
	require.NoError(t, err)

	assert.Equal(t, config.SeverityWarn, rules["no-undef"].Severity)
	assert.Equal(t, config.SeverityError, rules["no-debugger"].Severity)
}

func TestFileSourceSkipsUnresolvedNestedNames(t *testing.T) {
	t.Parallel()

	ctx, getLogs := testutil.NewTestContext(t)
	fs := writeFiles(t, map[string]string{
		"/repo/base.yml": "extends: [airbnb]\nrules:\n  semi: warn\n",
	})

	rules, err := NewFileSource(fs, "/repo").Rules(ctx, "./base.yml")
	require.NoError(t, err)

	assert.Equal(t, map[string]config.RuleSetting{"semi": {Severity: config.SeverityWarn}}, rules)
	assert.Contains(t, getLogs(), "skipping unresolved extension")
}

func TestFileSourceStrictNestedNames(t *testing.T) {
	t.Parallel()

	fs := writeFiles(t, map[string]string{
		"/repo/base.yml": "extends: [airbnb]\n",
	})

	_, err := NewFileSource(fs, "/repo", WithStrict()).Rules(context.Background(), "./base.yml")
	require.ErrorIs(t, err, ErrUnresolvedExtension)
	assert.NotErrorIs(t, err, ErrUnknownExtension)
}

func TestFileSourceDetectsCycles(t *testing.T) {
	t.Parallel()

	fs := writeFiles(t, map[string]string{
		"/repo/a.yml": "extends: ./b.yml\n",
		"/repo/b.yml": "extends: ./a.yml\n",
	})

	_, err := NewFileSource(fs, "/repo").Rules(context.Background(), "./a.yml")
	require.ErrorIs(t, err, ErrExtensionCycle)
	assert.Contains(t, err.Error(), "a.yml -> /repo/b.yml -> /repo/a.yml")
}

func TestFileSourceAllowsDiamonds(t *testing.T) {
	t.Parallel()

	fs := writeFiles(t, map[string]string{
		"/repo/top.yml":    "extends: [./left.yml, ./right.yml]\n",
		"/repo/left.yml":   "extends: ./shared.yml\nrules:\n  semi: warn\n",
		"/repo/right.yml":  "extends: ./shared.yml\n",
		"/repo/shared.yml": "rules:\n  semi: error\n",
	})

	rules, err := NewFileSource(fs, "/repo").Rules(context.Background(), "./top.yml")
	require.NoError(t, err)

	// right is applied after left and re-applies shared
	assert.Equal(t, config.SeverityError, rules["semi"].Severity)
}

func TestFileSourceUnknownForNonFileNames(t *testing.T) {
	t.Parallel()

	_, err := NewFileSource(afero.NewMemMapFs(), "/repo").Rules(context.Background(), "eslint:recommended")
	require.ErrorIs(t, err, ErrUnknownExtension)
}

func TestFileSourceMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewFileSource(afero.NewMemMapFs(), "/repo").Rules(context.Background(), "./missing.yml")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownExtension)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestFileSourceInvalidExtension(t *testing.T) {
	t.Parallel()

	fs := writeFiles(t, map[string]string{
		"/repo/bad.json": `{"rules": {"semi": "fatal"}}`,
	})

	_, err := NewFileSource(fs, "/repo").Rules(context.Background(), "./bad.json")
	require.ErrorIs(t, err, config.ErrInvalidSeverity)
}
