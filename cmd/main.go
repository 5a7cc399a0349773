package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ankideku/deku-migrate/internal/cmd"
	"github.com/ankideku/deku-migrate/internal/config"
)

// Build information injected at build time via ldflags
// Example: -ldflags="-X main.Version=v1.0.0 -X main.Commit=abc123 ..."
var (
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = "unknown"
	Version   = "dev"
)

// Tagline is the application's tagline used in help text
const Tagline = "Moves the AnkiDeku V1 file database into the V2 SQLite database"

// versionInfo returns formatted version information for CLI display
func versionInfo() string {
	return fmt.Sprintf("deku-migrate %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, GoVersion)
}

func main() {
	// DEKU_* variables may live in a .env file next to the legacy data
	if err := config.LoadEnv(config.EnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Container is created in CLI.AfterApply() after logging is initialized
	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("deku-migrate"),
		kong.Description(Tagline),
		kong.Vars{
			"default_source": config.DefaultSourceDir,
			"version":        versionInfo(),
		},
		kong.UsageOnError(),
		kong.Bind(&cli),
	)

	err := ctx.Run()
	if closeErr := cli.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
