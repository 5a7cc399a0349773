package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ankideku/deku-migrate/internal/config"
)

// DefaultMaxLogFiles is the default number of log files kept in the log directory
const DefaultMaxLogFiles = 1000

// Logger is the public logger instance accessible from all packages.
// It discards everything until Initialize enables file logging.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Initialize sets up the logger based on the debug flag and configuration.
// It returns the path of the log file, or "" when logging is disabled.
func Initialize(debug bool, debugFile string, maxLogFiles int) (string, error) {
	if os.Getenv(config.EnvDebug) == "1" {
		debug = true
	}
	if debugFile == "" {
		debugFile = os.Getenv(config.EnvDebugFile)
	}
	if v := os.Getenv(config.EnvMaxLogFiles); v != "" && maxLogFiles == DefaultMaxLogFiles {
		if parsed, err := strconv.Atoi(v); err == nil {
			maxLogFiles = parsed
		}
	}

	if !debug && debugFile == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return "", nil
	}

	logFilePath, err := resolveLogFile(debugFile, maxLogFiles)
	if err != nil {
		return "", err
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Logger.Info("Debug logging initialized", "log_file", logFilePath)
	return logFilePath, nil
}

// resolveLogFile returns debugFile when set, otherwise a fresh uuid named
// file in LogDir after pruning the directory down to maxLogFiles.
func resolveLogFile(debugFile string, maxLogFiles int) (string, error) {
	dir := filepath.Dir(debugFile)
	if debugFile == "" {
		var err error
		if dir, err = LogDir(); err != nil {
			return "", fmt.Errorf("failed to get log directory: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	if debugFile != "" {
		return debugFile, nil
	}

	if maxLogFiles > 0 {
		// Keep one slot free for the file about to be created
		if _, err := pruneLogs(dir, maxLogFiles-1); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
		}
	}
	return filepath.Join(dir, uuid.NewString()+logExt), nil
}

const logExt = ".log"

// pruneLogs deletes the oldest *.log files of dir until at most keep remain.
// It returns how many files were deleted.
func pruneLogs(dir string, keep int) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFile struct {
		modTime time.Time
		path    string
	}
	var logs []logFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != logExt {
			continue
		}
		if info, err := entry.Info(); err == nil {
			logs = append(logs, logFile{modTime: info.ModTime(), path: filepath.Join(dir, entry.Name())})
		}
	}
	if len(logs) <= keep {
		return 0, nil
	}

	slices.SortFunc(logs, func(a, b logFile) int { return a.modTime.Compare(b.modTime) })

	var errs []error
	removed := 0
	for _, l := range logs[:len(logs)-keep] {
		if err := os.Remove(l.path); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

// LogDir returns the OS-specific log directory
func LogDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return logDirFor(runtime.GOOS, homeDir, os.Getenv), nil
}

func logDirFor(goos, homeDir string, getenv func(string) string) string {
	envOr := func(key string, fallback ...string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return filepath.Join(append([]string{homeDir}, fallback...)...)
	}

	switch goos {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "AnkiDeku")
	case "linux":
		return filepath.Join(envOr("XDG_STATE_HOME", ".local", "state"), "AnkiDeku")
	case "windows":
		return filepath.Join(envOr("LOCALAPPDATA", "AppData", "Local"), "AnkiDeku", "logs")
	default:
		return filepath.Join(homeDir, ".ankideku", "logs")
	}
}
