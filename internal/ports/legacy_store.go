package ports

import "github.com/ankideku/deku-migrate/internal/domain"

// SettingEntry is one key of the V1 settings document, value kept as raw JSON
type SettingEntry struct {
	Key   string
	Value []byte
}

// DeckDocument is a V1 per-deck cache file
type DeckDocument struct {
	DeckName          string
	LastSyncTimestamp *int64
	Notes             []NoteRecord
	Path              string
}

// NoteRecord is a note embedded in a DeckDocument.
// NoteID is zero when the document carries no usable id.
type NoteRecord struct {
	DeckName  string
	Fields    []domain.Field
	ModelName string
	Mod       int64
	NoteID    int64
	Tags      []string
}

// SessionRequest is the V1 request.json of a session directory
type SessionRequest struct {
	DeckName   string
	Prompt     string
	SessionID  string
	Timestamp  any
	TotalCards int64
}

// SessionStateDocument is the V1 state.json of a session directory
type SessionStateDocument struct {
	ExitCode  *int64
	Message   *string
	State     string
	Timestamp any
}

// SuggestionDocument is a V1 suggestion file
type SuggestionDocument struct {
	Accepted       *bool
	Changes        []domain.Field
	NoteID         int64
	OriginalFields []domain.Field
	Path           string
	Reasoning      string
}

// HistoryRecord is one entry of a V1 history.json list
type HistoryRecord struct {
	Action         string
	AppliedChanges []domain.Field
	Changes        []domain.Field
	DeckName       string
	NoteID         int64
	Original       []domain.Field
	Reasoning      *string
	Timestamp      any
	UserEdits      []domain.Field
}

// LegacyStore reads the V1 file based database.
// Unreadable documents are reported as absent, never as errors.
type LegacyStore interface {
	Root() string
	Settings() ([]SettingEntry, bool)
	HasDecks() bool
	Decks() []DeckDocument
	HasSessions() bool
	SessionDirs() []string
	SessionRequest(dir string) (*SessionRequest, bool)
	SessionState(dir string) (*SessionStateDocument, bool)
	Suggestions(dir string) []SuggestionDocument
	History(dir string) ([]HistoryRecord, bool)
}
