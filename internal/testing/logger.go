package testutil

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/wizzomafizzo/lintrc/internal/logging"
)

// NewTestContext creates a context with logger for race-safe testing
// Returns a context with logger attached and a function to retrieve log output
func NewTestContext(t *testing.T) (ctx context.Context, getLogOutput func() string) {
	t.Helper()

	var (
		mu        sync.Mutex
		logOutput strings.Builder
	)
	writer := &lockedBuilder{mu: &mu, b: &logOutput}

	ctx, err := logging.New(context.Background(), nil, logging.Config{
		Command: "test",
		Writer:  writer,
		Level:   zerolog.DebugLevel,
	})
	if err != nil {
		t.Fatalf("Failed to create test logger: %v", err)
	}

	return ctx, func() string {
		mu.Lock()
		defer mu.Unlock()
		return logOutput.String()
	}
}

type lockedBuilder struct {
	mu *sync.Mutex
	b  *strings.Builder
}

func (l *lockedBuilder) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p) //nolint:wrapcheck // strings.Builder never fails
}
