package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ankideku/deku-migrate/internal/adapters/storage/storagetest"
)

// TestEnvironment provides an isolated test environment with its own data
// directory, V1 source directory and working directory.
type TestEnvironment struct {
	DataDir    string
	SourceRoot string
	WorkDir    string
	extraEnv   map[string]string
	tb         testing.TB
}

// NewTestEnvironment creates an isolated test environment with a V2 database
// in a temp DEKU_DATA_DIR and an empty V1 source directory.
// The temp directories are automatically cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	env := NewEmptyEnvironment(tb)
	storagetest.CreateDatabase(tb, env.DBPath())
	return env
}

// NewEmptyEnvironment creates an isolated test environment without a V2 database.
func NewEmptyEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	root := tb.TempDir()
	env := &TestEnvironment{
		DataDir:    filepath.Join(root, "data"),
		SourceRoot: filepath.Join(root, "database"),
		WorkDir:    root,
		extraEnv:   make(map[string]string),
		tb:         tb,
	}
	for _, dir := range []string{env.DataDir, env.SourceRoot} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			tb.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	return env
}

// Environ returns environment variables configured for test isolation.
// It filters out DEKU_* variables and sets:
//   - DEKU_DATA_DIR to the temp data directory
//   - DEKU_SOURCE to the temp V1 directory
//   - DEKU_DEBUG to empty string (disables debug logging)
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+3+len(e.extraEnv))

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "DEKU_") {
			continue
		}
		if _, ok := e.extraEnv[key]; ok {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"DEKU_DATA_DIR="+e.DataDir,
		"DEKU_SOURCE="+e.SourceRoot,
		"DEKU_DEBUG=",
	)

	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// DBPath returns the path to the test database.
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.DataDir, "ankideku.db")
}

// WriteSource writes a V1 document relative to the source root.
func (e *TestEnvironment) WriteSource(rel, content string) {
	e.tb.Helper()

	path := filepath.Join(e.SourceRoot, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.tb.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.tb.Fatalf("Failed to write %s: %v", rel, err)
	}
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}
