package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ankideku/deku-migrate/internal/config"
	"github.com/ankideku/deku-migrate/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	Source      string           `help:"V1 database directory" default:"${default_source}" env:"DEKU_SOURCE" type:"path"`
	DB          string           `name:"db" help:"V2 SQLite database (default: platform data directory)" env:"DEKU_DB"`

	Migrate MigrateCmd `cmd:"" help:"Migrate the V1 file database into the V2 SQLite database (default)" default:"withargs"`
	Paths   PathsCmd   `cmd:"paths" help:"Show the resolved source, database and log paths"`

	// Internal fields (not flags)
	Container *Container `kong:"-"`
	LogFile   string     `kong:"-"`
}

// AfterApply initializes logging after CLI parsing, then wires the container
func (c *CLI) AfterApply() error {
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}
	c.LogFile = logFilePath

	if c.Debug || c.DebugFile != "" {
		os.Setenv(config.EnvDebug, "1")
		if logFilePath != "" {
			os.Setenv(config.EnvDebugFile, logFilePath)
		}
	}

	// Create container AFTER logging is initialized so GORM's logger has a target
	container, err := NewContainer(ContainerOptions{
		DB:     c.DB,
		Debug:  c.Debug || c.DebugFile != "",
		Out:    os.Stdout,
		Source: c.Source,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
