package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ankideku/deku-migrate/internal/logging"
	"github.com/ankideku/deku-migrate/internal/ports"
)

// StageCount is the number of pipeline stages Run executes
const StageCount = 4

// Clock returns the current time
type Clock func() time.Time

// MigrationService moves the V1 file database into the V2 SQLite database
type MigrationService struct {
	clock    Clock
	reporter ports.Reporter
	skipped  []SkippedRecord
	source   ports.LegacyStore
	target   ports.MigrationTarget
}

// NewMigrationService creates a new MigrationService
func NewMigrationService(
	source ports.LegacyStore,
	target ports.MigrationTarget,
	reporter ports.Reporter,
) *MigrationService {
	return &MigrationService{
		clock:    time.Now,
		reporter: reporter,
		source:   source,
		target:   target,
	}
}

// WithClock replaces the wall clock used for migration timestamps
func (s *MigrationService) WithClock(clock Clock) *MigrationService {
	s.clock = clock
	return s
}

// SkippedRecord is a source record the migration left out
type SkippedRecord struct {
	Reason string `yaml:"reason"`
	Stage  string `yaml:"stage"`
}

// Summary holds the counts of one migration run
type Summary struct {
	Decks       int
	Duration    time.Duration
	History     int
	Notes       int
	Sessions    int
	Settings    int
	Skipped     []SkippedRecord
	StartedAt   time.Time
	Suggestions int
	Warnings    int
}

// String renders the final tally on one line
func (s Summary) String() string {
	return fmt.Sprintf("Settings: %d, Decks: %d, Notes: %d, Sessions: %d, Suggestions: %d, History: %d",
		s.Settings, s.Decks, s.Notes, s.Sessions, s.Suggestions, s.History)
}

// warningCounter is implemented by reporters that count their warnings
type warningCounter interface {
	Warnings() int
}

// Run executes all stages in order. Each stage commits on its own, so an
// error leaves the stages before it in place.
func (s *MigrationService) Run(ctx context.Context) (Summary, error) {
	summary := Summary{StartedAt: s.clock()}
	s.skipped = nil

	logging.Logger.Info("Starting migration", "source", s.source.Root())

	var err error
	if summary.Settings, err = s.MigrateSettings(ctx); err != nil {
		return s.finish(summary), err
	}
	if summary.Decks, summary.Notes, err = s.MigrateDecks(ctx); err != nil {
		return s.finish(summary), err
	}

	ids, sessions, err := s.MigrateSessions(ctx)
	summary.Sessions = sessions
	if err != nil {
		return s.finish(summary), err
	}
	logging.Logger.Debug("Session map built", "directories", ids.Len())
	if summary.Suggestions, summary.History, err = s.MigrateSuggestionsAndHistory(ctx, ids); err != nil {
		return s.finish(summary), err
	}

	summary = s.finish(summary)
	logging.Logger.Info("Migration complete",
		"settings", summary.Settings,
		"decks", summary.Decks,
		"notes", summary.Notes,
		"sessions", summary.Sessions,
		"suggestions", summary.Suggestions,
		"history", summary.History,
		"warnings", summary.Warnings,
		"duration", summary.Duration)
	return summary, nil
}

func (s *MigrationService) finish(summary Summary) Summary {
	summary.Duration = s.clock().Sub(summary.StartedAt)
	summary.Skipped = s.skipped
	if counter, ok := s.reporter.(warningCounter); ok {
		summary.Warnings = counter.Warnings()
	} else {
		summary.Warnings = len(s.skipped)
	}
	return summary
}

// skip reports a record left out of the given stage
func (s *MigrationService) skip(stage string, format string, args ...any) {
	reason := fmt.Sprintf(format, args...)
	s.skipped = append(s.skipped, SkippedRecord{Reason: reason, Stage: stage})
	s.reporter.Warn("%s", reason)
}

func (s *MigrationService) nowMillis() int64 {
	return s.clock().UnixMilli()
}

// reportUnnamed warns about fields dropped for having no name
func (s *MigrationService) reportUnnamed(stage string, unnamed int, owner string) {
	if unnamed > 0 {
		s.skip(stage, "Skipping %d unnamed field(s) of %s", unnamed, owner)
	}
}

// Stage names used in skipped record reports
const (
	stageDecks       = "decks"
	stageHistory     = "history"
	stageSuggestions = "suggestions"
)
