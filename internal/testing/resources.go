package testutil

import (
	"testing"

	"go.uber.org/goleak"
)

// VerifyNoLeaks fails t if goroutines started during the test are still
// running. Defer it first so it runs after every other cleanup:
//
//	defer testutil.VerifyNoLeaks(t)
//
// Tests using it must not call t.Parallel.
func VerifyNoLeaks(t *testing.T, extra ...goleak.Option) {
	t.Helper()
	goleak.VerifyNone(t, append(leakOptions(), extra...)...)
}

// leakOptions ignores goroutines owned by the test runner and the rotating
// log writer, which lives for the whole process.
func leakOptions() []goleak.Option {
	return []goleak.Option{
		goleak.IgnoreTopFunction("testing.tRunner.func1"),
		goleak.IgnoreTopFunction("go.uber.org/goleak.(*opts).retry"),
		goleak.IgnoreTopFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun"),
	}
}
