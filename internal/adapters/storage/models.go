package storage

import "gorm.io/datatypes"

// Timestamps are epoch milliseconds written by the migration itself,
// so GORM's automatic time tracking is disabled on every model.

// SettingModel is the GORM model for the setting table
type SettingModel struct {
	Key       string         `gorm:"column:key;uniqueIndex"`
	UpdatedAt int64          `gorm:"autoUpdateTime:false"`
	Value     datatypes.JSON `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (SettingModel) TableName() string { return "setting" }

// DeckCacheModel is the GORM model for the deck_cache table
type DeckCacheModel struct {
	AnkiID            int64 `gorm:"uniqueIndex"`
	CreatedAt         int64 `gorm:"autoCreateTime:false"`
	LastSyncTimestamp *int64
	Name              string `gorm:"not null"`
	UpdatedAt         int64  `gorm:"autoUpdateTime:false"`
}

// TableName specifies the table name for GORM
func (DeckCacheModel) TableName() string { return "deck_cache" }

// CachedNoteModel is the GORM model for the cached_note table
type CachedNoteModel struct {
	CreatedAt       int64 `gorm:"autoCreateTime:false"`
	DeckID          int64 `gorm:"not null;index"`
	DeckName        string
	EstimatedTokens *int64
	ID              int64 `gorm:"primaryKey;autoIncrement:false"`
	ModelName       string
	Mod             int64
	Tags            datatypes.JSON `gorm:"not null"`
	UpdatedAt       int64          `gorm:"autoUpdateTime:false"`
}

// TableName specifies the table name for GORM
func (CachedNoteModel) TableName() string { return "cached_note" }

// FieldValueModel is the GORM model for the field_value table.
// Exactly one of NoteID, SuggestionID and HistoryID is set.
type FieldValueModel struct {
	Context      string `gorm:"not null"`
	FieldName    string `gorm:"not null"`
	FieldOrder   int    `gorm:"not null;default:0"`
	FieldValue   string `gorm:"not null"`
	HistoryID    *int64 `gorm:"index"`
	ID           int64  `gorm:"primaryKey"`
	NoteID       *int64 `gorm:"index"`
	SuggestionID *int64 `gorm:"index"`
}

// TableName specifies the table name for GORM
func (FieldValueModel) TableName() string { return "field_value" }

// SessionModel is the GORM model for the session table
type SessionModel struct {
	CreatedAt                int64 `gorm:"autoCreateTime:false"`
	DeckID                   int64
	DeckName                 string
	ExitCode                 *int64
	ID                       int64 `gorm:"primaryKey"`
	ProgressFailedBatches    int64
	ProgressInputTokens      int64
	ProgressOutputTokens     int64
	ProgressProcessedBatches int64
	ProgressProcessedCards   int64
	ProgressSuggestionsCount int64
	ProgressTotalBatches     int64
	ProgressTotalCards       int64
	Prompt                   string
	State                    string `gorm:"not null;check:state IN ('pending','running','completed','failed','cancelled','incomplete')"`
	StateMessage             *string
	UpdatedAt                int64 `gorm:"autoUpdateTime:false"`
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string { return "session" }

// SuggestionModel is the GORM model for the suggestion table
type SuggestionModel struct {
	CreatedAt int64 `gorm:"autoCreateTime:false"`
	DecidedAt *int64
	ID        int64 `gorm:"primaryKey"`
	NoteID    int64 `gorm:"uniqueIndex:idx_suggestion_session_note"`
	Reasoning string
	SessionID int64  `gorm:"uniqueIndex:idx_suggestion_session_note"`
	Status    string `gorm:"not null;check:status IN ('accepted','rejected','pending')"`
}

// TableName specifies the table name for GORM
func (SuggestionModel) TableName() string { return "suggestion" }

// HistoryEntryModel is the GORM model for the history_entry table
type HistoryEntryModel struct {
	Action    string `gorm:"not null"`
	DeckID    int64
	DeckName  string
	ID        int64 `gorm:"primaryKey"`
	NoteID    int64 `gorm:"index"`
	Reasoning *string
	SessionID int64 `gorm:"index"`
	Timestamp int64
}

// TableName specifies the table name for GORM
func (HistoryEntryModel) TableName() string { return "history_entry" }
