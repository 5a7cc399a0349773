package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertSuccess checks the run exited with 0.
func AssertSuccess(tb testing.TB, result CommandResult) {
	tb.Helper()
	AssertExitCode(tb, result, 0)
}

// AssertExitCode checks the run exited with expected, printing both streams otherwise.
func AssertExitCode(tb testing.TB, result CommandResult, expected int) {
	tb.Helper()
	assert.Equal(tb, expected, result.ExitCode,
		"exit code mismatch\nstdout:\n%s\nstderr:\n%s", result.Stdout, result.Stderr)
}

// AssertStdoutContains checks stdout holds expected.
func AssertStdoutContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stdout, expected, "stdout:\n%s", result.Stdout)
}

// AssertStdoutNotContains checks stdout does not hold unexpected.
func AssertStdoutNotContains(tb testing.TB, result CommandResult, unexpected string) {
	tb.Helper()
	assert.NotContains(tb, result.Stdout, unexpected, "stdout:\n%s", result.Stdout)
}

// AssertStderrContains checks stderr holds expected.
func AssertStderrContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stderr, expected, "stderr:\n%s", result.Stderr)
}
