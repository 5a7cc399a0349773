package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/ankideku/deku-migrate/internal/adapters/console"
	"github.com/ankideku/deku-migrate/internal/adapters/legacy"
	"github.com/ankideku/deku-migrate/internal/adapters/lock"
	adapterstorage "github.com/ankideku/deku-migrate/internal/adapters/storage"
	"github.com/ankideku/deku-migrate/internal/config"
	"github.com/ankideku/deku-migrate/internal/domain"
	"github.com/ankideku/deku-migrate/internal/logging"
	"github.com/ankideku/deku-migrate/internal/paths"
	"github.com/ankideku/deku-migrate/internal/services"
)

// ConfirmFunc asks the user a yes/no question
type ConfirmFunc func(title, description string) (bool, error)

// ContainerOptions holds the resolved global flags
type ContainerOptions struct {
	DB     string
	Debug  bool
	Out    io.Writer
	Source string
}

// Container holds all dependencies for the application
type Container struct {
	Confirm     ConfirmFunc
	DBPath      string
	Interactive bool
	Reporter    *console.Reporter
	SourceRoot  string

	// Internal - for cleanup only
	debug bool
	lock  *lock.FileLock
	repo  *adapterstorage.SQLiteRepository
}

// NewContainer resolves the source and database paths. Nothing is opened
// until MigrationService is called.
func NewContainer(opts ContainerOptions) (*Container, error) {
	if opts.Source == "" {
		opts.Source = config.DefaultSourceDir
	}
	source, err := resolvePath(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source directory: %w", err)
	}

	dbPath := opts.DB
	if dbPath == "" {
		dbPath = paths.DBPath()
	}
	if dbPath, err = resolvePath(dbPath); err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &Container{
		Confirm:     confirmPrompt,
		DBPath:      dbPath,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		Reporter:    console.NewReporter(out),
		SourceRoot:  source,
		debug:       opts.Debug,
	}, nil
}

func resolvePath(path string) (string, error) {
	return filepath.Abs(paths.ExpandPath(path))
}

// CheckPreconditions fails when the V1 directory or the V2 database is missing
func (c *Container) CheckPreconditions() error {
	info, err := os.Stat(c.SourceRoot)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", domain.ErrSourceNotFound, c.SourceRoot)
	}

	info, err = os.Stat(c.DBPath)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", domain.ErrDatabaseNotFound, c.DBPath)
	}
	return nil
}

// MigrationService locks and opens the database and wires the migration service
func (c *Container) MigrationService(dryRun bool) (*services.MigrationService, error) {
	if c.repo != nil {
		return nil, errors.New("migration already opened")
	}

	fileLock, err := lock.Acquire(c.DBPath)
	if err != nil {
		return nil, err
	}

	repo, err := adapterstorage.NewSQLiteRepository(c.DBPath, adapterstorage.Options{
		Debug:  c.debug,
		DryRun: dryRun,
	})
	if err != nil {
		fileLock.Release()
		return nil, err
	}

	c.lock = fileLock
	c.repo = repo

	store := legacy.NewFileStore(c.SourceRoot, c.Reporter)
	return services.NewMigrationService(store, repo, c.Reporter), nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error
	if c.repo != nil {
		if err := c.repo.Close(); err != nil {
			logging.Logger.Error("Failed to close database", "error", err)
			errs = append(errs, err)
		}
		c.repo = nil
	}
	if c.lock != nil {
		if err := c.lock.Release(); err != nil {
			errs = append(errs, err)
		}
		c.lock = nil
	}
	return errors.Join(errs...)
}

// confirmPrompt asks for confirmation with a huh form
func confirmPrompt(title, description string) (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Value(&confirmed).
				Affirmative("Migrate").
				Negative("Cancel"),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}
