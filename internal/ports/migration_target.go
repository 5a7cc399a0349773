package ports

import (
	"context"

	"github.com/ankideku/deku-migrate/internal/domain"
)

// SettingWriter writes application settings
type SettingWriter interface {
	UpsertSetting(ctx context.Context, setting domain.Setting) error
}

// DeckWriter writes the deck and note cache
type DeckWriter interface {
	UpsertDeck(ctx context.Context, deck domain.Deck) error
	UpsertNote(ctx context.Context, note domain.CachedNote) error
	ReplaceNoteFields(ctx context.Context, noteID int64, fields []domain.FieldValue) error
}

// SessionWriter appends sessions and their review records
type SessionWriter interface {
	InsertSession(ctx context.Context, session domain.Session) (int64, error)
	// InsertSuggestion returns domain.ErrDuplicateSuggestion when the session
	// already has a suggestion for the note; the transaction stays usable.
	InsertSuggestion(ctx context.Context, suggestion domain.Suggestion) (int64, error)
	InsertHistoryEntry(ctx context.Context, entry domain.HistoryEntry) (int64, error)
}

// FieldValueWriter appends field snapshots
type FieldValueWriter interface {
	InsertFieldValues(ctx context.Context, values []domain.FieldValue) error
}

// MigrationWriter is the set of writes available inside a stage transaction
type MigrationWriter interface {
	SettingWriter
	DeckWriter
	SessionWriter
	FieldValueWriter
}

// MigrationTarget is the V2 database
type MigrationTarget interface {
	// Transaction runs fn in one transaction, committed when fn returns nil
	Transaction(ctx context.Context, fn func(w MigrationWriter) error) error
	Close() error
}
