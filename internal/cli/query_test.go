package cli

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/lintrc/internal/config"
	"github.com/wizzomafizzo/lintrc/internal/resolver"
)

func TestQuery(t *testing.T) {
	t.Parallel()

	app := NewApp(newProject(t), "", WithWorkDir("/repo/src"))
	results, err := app.Query(context.Background(), []string{
		"app.ts",
		"deep/app.test.ts",
		"/repo/dist/bundle.js",
		"../dist/other.js",
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "app.ts", results[0].Path)
	assert.Equal(t, config.SeverityError, results[0].Rules["semi"].Severity)
	assert.False(t, results[0].Ignored)

	assert.Equal(t, config.SeverityOff, results[1].Rules["semi"].Severity)
	assert.Equal(t, config.SeverityWarn, results[1].Rules["eqeqeq"].Severity)

	assert.True(t, results[2].Ignored)
	assert.True(t, results[3].Ignored)
}

func TestQueryKeepsArgumentOrder(t *testing.T) {
	t.Parallel()

	paths := make([]string, 64)
	for i := range paths {
		paths[i] = fmt.Sprintf("pkg%02d/file.ts", i)
	}

	results, err := NewApp(newProject(t), "", WithWorkDir("/repo")).Query(context.Background(), paths)
	require.NoError(t, err)
	for i, result := range results {
		assert.Equal(t, paths[i], result.Path)
	}
}

func TestQueryPathError(t *testing.T) {
	t.Parallel()

	_, err := NewApp(newProject(t), "", WithWorkDir("/repo")).Query(context.Background(), []string{"ok.ts", "bad\x00.ts"})
	require.Error(t, err)

	var pathErr *resolver.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Contains(t, err.Error(), "failed to resolve rules for bad")
}

func TestPrintConfig(t *testing.T) {
	t.Parallel()

	app := NewApp(newProject(t), "", WithWorkDir("/repo"))

	out, err := app.PrintConfig(context.Background(), "src/a.test.ts")
	require.NoError(t, err)
	assert.Equal(t, "rules:\n    eqeqeq: warn\n    semi: \"off\"\n", out)

	_, err = app.PrintConfig(context.Background(), "")
	require.Error(t, err)
}
