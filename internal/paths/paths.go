package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/ankideku/deku-migrate/internal/config"
)

const (
	appName    = "AnkiDeku"
	dbFileName = "ankideku.db"
)

// AppDataDir returns DEKU_DATA_DIR or the platform data directory of the application:
// ~/.config/AnkiDeku on Linux, ~/Library/Application Support/AnkiDeku on macOS
// and ~/AppData/Roaming/AnkiDeku on Windows.
func AppDataDir() string {
	if dataDir := os.Getenv(config.EnvDataDir); dataDir != "" {
		return ExpandPath(dataDir)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return appDataDirFor(runtime.GOOS, homeDir)
}

func appDataDirFor(goos, homeDir string) string {
	switch goos {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", appName)
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", appName)
	default:
		return filepath.Join(homeDir, ".config", appName)
	}
}

// DBPath returns the V2 database path inside AppDataDir
func DBPath() string {
	return filepath.Join(AppDataDir(), dbFileName)
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
