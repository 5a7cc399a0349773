package cmd

import (
	"fmt"
	"os"

	"github.com/ankideku/deku-migrate/internal/adapters/lock"
	"github.com/ankideku/deku-migrate/internal/logging"
)

// PathsCmd shows where the migration reads and writes
type PathsCmd struct{}

// Run executes the paths command
func (p *PathsCmd) Run(cli *CLI) error {
	c := cli.Container

	logDir, err := logging.LogDir()
	if err != nil {
		return fmt.Errorf("failed to resolve log directory: %w", err)
	}
	logFile := cli.LogFile
	if logFile == "" {
		logFile = "(debug logging disabled)"
	}

	c.Reporter.Table([][2]string{
		{"Source", describe(c.SourceRoot)},
		{"Database", describe(c.DBPath)},
		{"Lock file", lock.Path(c.DBPath)},
		{"Log dir", logDir},
		{"Log file", logFile},
	})
	return nil
}

func describe(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path + " (missing)"
	}
	return path
}
