package domain

// DefaultHistoryAction is recorded for history entries without an action
const DefaultHistoryAction = "unknown"

// HistoryEntry represents an action taken on a note during a session
type HistoryEntry struct {
	Action    string
	DeckID    int64
	DeckName  string
	ID        int64
	NoteID    int64
	Reasoning *string
	SessionID int64
	Timestamp int64
}

