package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// EnvFile is the optional dotenv file read from the working directory
const EnvFile = ".env"

// Environment variables understood by deku-migrate
const (
	EnvDataDir     = "DEKU_DATA_DIR"
	EnvDB          = "DEKU_DB"
	EnvDebug       = "DEKU_DEBUG"
	EnvDebugFile   = "DEKU_DEBUG_FILE"
	EnvMaxLogFiles = "DEKU_MAX_LOG_FILES"
	EnvSource      = "DEKU_SOURCE"
)

// LoadEnv loads DEKU_* variables from path into the process environment.
// Variables already set win over the file. A missing file is not an error.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat env file: %w", err)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("invalid env file %s: %w", path, err)
	}
	return nil
}
