package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/ankideku/deku-migrate/internal/domain"
	"github.com/ankideku/deku-migrate/internal/logging"
	"github.com/ankideku/deku-migrate/internal/ports"
)

const (
	busyTimeoutMillis = 5000
	fieldBatchSize    = 100
	openRetries       = 5
)

// SQLiteRepository writes migrated rows into the V2 database using GORM
type SQLiteRepository struct {
	db     *gorm.DB
	dryRun bool
	sqlDB  *sql.DB
}

// Verify interface compliance at compile time
var _ ports.MigrationTarget = (*SQLiteRepository)(nil)

// gormLogger wraps the deku logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	query, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		// Duplicate suggestions surface here before they are skipped
		logging.Logger.Debug("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", query,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", query,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", query,
			"rows", rows,
		)
	}
}

func newGormLogger(debug bool) logger.Interface {
	if debug {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// Options configures how the V2 database is opened
type Options struct {
	// Debug traces every statement to the log file
	Debug bool
	// DryRun wraps the whole run in a transaction that Close rolls back
	DryRun bool
}

// NewSQLiteRepository opens the existing V2 database at dbPath.
// The file is never created and its schema is never altered.
func NewSQLiteRepository(dbPath string, opts Options) (*SQLiteRepository, error) {
	info, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDatabaseNotFound, dbPath)
		}
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrDatabaseNotFound, dbPath)
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger:                 newGormLogger(opts.Debug),
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps the dry run transaction and the pragmas in one place
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.Exec("PRAGMA foreign_keys=ON").Error; err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// The application may still hold the file; wait for it before starting
	var tables int64
	err = withRetry(func() error {
		return db.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'").Scan(&tables).Error
	}, openRetries)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to read database schema: %w", err)
	}
	logging.Logger.Info("Opened V2 database", "path", dbPath, "tables", tables, "dry_run", opts.DryRun)

	repo := &SQLiteRepository{db: db, dryRun: opts.DryRun, sqlDB: sqlDB}
	if opts.DryRun {
		tx := db.Begin()
		if tx.Error != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to begin dry run transaction: %w", tx.Error)
		}
		repo.db = tx
	}
	return repo, nil
}

// dsn opens the file read-write without creating it
func dsn(dbPath string) string {
	return fmt.Sprintf("file:%s?mode=rw&_foreign_keys=on&_busy_timeout=%d",
		filepath.ToSlash(dbPath), busyTimeoutMillis)
}

// Close closes the database connection, discarding all writes on a dry run
func (r *SQLiteRepository) Close() error {
	if r.dryRun {
		if err := r.db.Rollback().Error; err != nil {
			logging.Logger.Warn("Failed to roll back dry run", "error", err)
		}
	}
	return r.sqlDB.Close()
}

// Transaction runs fn inside one transaction.
// On a dry run it is a savepoint of the outer transaction.
func (r *SQLiteRepository) Transaction(ctx context.Context, fn func(w ports.MigrationWriter) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&writer{tx: tx})
	})
}

// writer performs the writes of one stage transaction
type writer struct {
	tx *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.MigrationWriter = (*writer)(nil)

// UpsertSetting implements SettingWriter.UpsertSetting
func (w *writer) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	m := domainToSettingModel(setting)
	err := w.tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", setting.Key, err)
	}
	return nil
}

// UpsertDeck implements DeckWriter.UpsertDeck
func (w *writer) UpsertDeck(ctx context.Context, deck domain.Deck) error {
	m := domainToDeckCacheModel(deck)
	err := w.tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "anki_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "last_sync_timestamp", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("failed to upsert deck %s: %w", deck.Name, err)
	}
	return nil
}

// UpsertNote implements DeckWriter.UpsertNote
func (w *writer) UpsertNote(ctx context.Context, note domain.CachedNote) error {
	m, err := domainToCachedNoteModel(note)
	if err != nil {
		return err
	}
	err = w.tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"deck_id", "deck_name", "model_name", "tags", "mod", "estimated_tokens", "updated_at",
		}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("failed to upsert note %d: %w", note.ID, err)
	}
	return nil
}

// ReplaceNoteFields implements DeckWriter.ReplaceNoteFields
func (w *writer) ReplaceNoteFields(ctx context.Context, noteID int64, fields []domain.FieldValue) error {
	err := w.tx.WithContext(ctx).
		Where("note_id = ? AND context = ?", noteID, string(domain.ContextCurrent)).
		Delete(&FieldValueModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear fields of note %d: %w", noteID, err)
	}
	return w.InsertFieldValues(ctx, fields)
}

// InsertSession implements SessionWriter.InsertSession
func (w *writer) InsertSession(ctx context.Context, session domain.Session) (int64, error) {
	m := domainToSessionModel(session)
	if err := w.tx.WithContext(ctx).Create(&m).Error; err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}
	return m.ID, nil
}

// InsertSuggestion implements SessionWriter.InsertSuggestion.
// The insert runs in a savepoint so a rejected row leaves the stage intact.
func (w *writer) InsertSuggestion(ctx context.Context, suggestion domain.Suggestion) (int64, error) {
	m := domainToSuggestionModel(suggestion)
	err := w.tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&m).Error
	})
	if err != nil {
		if isConstraintViolation(err) {
			return 0, fmt.Errorf("%w: note %d: %v", domain.ErrDuplicateSuggestion, suggestion.NoteID, err)
		}
		return 0, fmt.Errorf("failed to insert suggestion for note %d: %w", suggestion.NoteID, err)
	}
	return m.ID, nil
}

// InsertHistoryEntry implements SessionWriter.InsertHistoryEntry
func (w *writer) InsertHistoryEntry(ctx context.Context, entry domain.HistoryEntry) (int64, error) {
	m := domainToHistoryEntryModel(entry)
	if err := w.tx.WithContext(ctx).Create(&m).Error; err != nil {
		return 0, fmt.Errorf("failed to insert history entry for note %d: %w", entry.NoteID, err)
	}
	return m.ID, nil
}

// InsertFieldValues implements FieldValueWriter.InsertFieldValues
func (w *writer) InsertFieldValues(ctx context.Context, values []domain.FieldValue) error {
	if len(values) == 0 {
		return nil
	}

	models := make([]FieldValueModel, 0, len(values))
	for _, v := range values {
		m, err := domainToFieldValueModel(v)
		if err != nil {
			return err
		}
		models = append(models, m)
	}

	if err := w.tx.WithContext(ctx).CreateInBatches(&models, fieldBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert field values: %w", err)
	}
	return nil
}

// isConstraintViolation reports a UNIQUE or FOREIGN KEY rejection
func isConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

// withRetry retries operations on SQLITE_BUSY with linear backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
