package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ankideku/deku-migrate/internal/domain"
	"github.com/ankideku/deku-migrate/internal/logging"
	"github.com/ankideku/deku-migrate/internal/services"
)

// MigrateCmd runs the V1 to V2 migration
type MigrateCmd struct {
	DryRun bool   `help:"Run every stage, then roll back instead of committing"`
	Report string `help:"Write a YAML report of the run to this file" type:"path"`
	Yes    bool   `help:"Skip the confirmation prompt" short:"y"`
}

// Run executes the migrate command
func (m *MigrateCmd) Run(cli *CLI) error {
	c := cli.Container
	logging.Logger.Info("Executing migrate command",
		"source", c.SourceRoot, "db", c.DBPath, "dryRun", m.DryRun, "report", m.Report)

	c.Reporter.Banner("AnkiDeku Database Migration: V1 (files) → V2 (SQLite)")

	if err := c.CheckPreconditions(); err != nil {
		logging.Logger.Error("Migration precondition failed", "error", err)
		c.Reporter.Error("%v", err)
		if errors.Is(err, domain.ErrDatabaseNotFound) {
			c.Reporter.Muted("Please run the application first to initialize the database.")
		}
		return err
	}
	c.Reporter.Muted("Using existing database: %s", c.DBPath)

	if !m.DryRun && !m.Yes && c.Interactive {
		confirmed, err := c.Confirm(
			fmt.Sprintf("Migrate %s into %s?", c.SourceRoot, c.DBPath),
			"Sessions, suggestions and history are appended on every run.",
		)
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !confirmed {
			logging.Logger.Info("Migration cancelled by user")
			c.Reporter.Muted("Migration cancelled.")
			return nil
		}
	}

	service, err := c.MigrationService(m.DryRun)
	if err != nil {
		return err
	}

	summary, runErr := service.Run(context.Background())

	if m.Report != "" {
		report := services.NewReport(summary, c.SourceRoot, c.DBPath, m.DryRun, runErr)
		if err := services.WriteReport(m.Report, report); err != nil {
			logging.Logger.Error("Failed to write report", "path", m.Report, "error", err)
			c.Reporter.Warn("Could not write report %s: %v", m.Report, err)
		}
	}

	if runErr != nil {
		logging.Logger.Error("Migration failed", "error", runErr)
		c.Reporter.Error("Migration failed: %v", runErr)
		return fmt.Errorf("migration failed: %w", runErr)
	}

	m.printSummary(c, summary)
	return nil
}

func (m *MigrateCmd) printSummary(c *Container, summary services.Summary) {
	fmt.Fprintln(c.Reporter.Out())
	if m.DryRun {
		c.Reporter.Banner("Dry Run Complete! No changes were written.")
	} else {
		c.Reporter.Banner("Migration Complete!")
	}

	c.Reporter.Table([][2]string{
		{"Settings", strconv.Itoa(summary.Settings)},
		{"Decks", strconv.Itoa(summary.Decks)},
		{"Notes", strconv.Itoa(summary.Notes)},
		{"Sessions", strconv.Itoa(summary.Sessions)},
		{"Suggestions", strconv.Itoa(summary.Suggestions)},
		{"History", strconv.Itoa(summary.History)},
		{"Warnings", strconv.Itoa(summary.Warnings)},
	})

	if m.Report != "" {
		c.Reporter.Muted("Report written to: %s", m.Report)
	}
	if m.DryRun {
		return
	}

	c.Reporter.Muted("Data migrated to: %s", c.DBPath)
	c.Reporter.Muted("You can now safely delete or archive the old V1 files:")
	c.Reporter.Muted("  - %s/  (entire directory)", c.SourceRoot)
}
