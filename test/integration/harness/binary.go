package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

const commandTimeout = 30 * time.Second

// CommandResult holds the exit code and output streams of one deku-migrate run
type CommandResult struct {
	ExitCode int
	Stderr   string
	Stdout   string
}

var build = struct {
	once sync.Once
	dir  string
	path string
	err  error
}{}

// BuildBinary compiles ./cmd into a temp directory once per test process.
func BuildBinary() (string, error) {
	build.once.Do(func() {
		root, err := moduleRoot()
		if err != nil {
			build.err = fmt.Errorf("failed to locate module root: %w", err)
			return
		}

		build.dir, err = os.MkdirTemp("", "deku-migrate-it-*")
		if err != nil {
			build.err = err
			return
		}
		build.path = filepath.Join(build.dir, "deku-migrate")

		cmd := exec.Command("go", "build", "-o", build.path, "./cmd")
		cmd.Dir = root
		if out, err := cmd.CombinedOutput(); err != nil {
			build.err = fmt.Errorf("go build failed: %w\n%s", err, out)
		}
	})
	return build.path, build.err
}

// CleanupBinary removes the directory BuildBinary compiled into.
func CleanupBinary() {
	if build.dir != "" {
		os.RemoveAll(build.dir)
	}
}

// RunCommand runs the compiled binary inside env and captures its result.
// A run that exceeds the timeout or fails to start reports exit code -1.
func RunCommand(tb testing.TB, env *TestEnvironment, args ...string) CommandResult {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, build.path, args...)
	cmd.Dir = env.WorkDir
	cmd.Env = env.Environ()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := CommandResult{}
	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		tb.Logf("deku-migrate %v timed out after %v", args, commandTimeout)
		result.ExitCode = -1
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		tb.Logf("deku-migrate %v could not run: %v", args, err)
		result.ExitCode = -1
	}

	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	return result
}

func moduleRoot() (string, error) {
	out, err := exec.Command("go", "env", "GOMOD").Output()
	if err != nil {
		return "", err
	}
	gomod := strings.TrimSpace(string(out))
	if gomod == "" || gomod == os.DevNull {
		return "", errors.New("not inside a Go module")
	}
	return filepath.Dir(gomod), nil
}
