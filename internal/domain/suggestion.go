package domain

// SuggestionStatus is the review status of an AI suggestion
type SuggestionStatus string

const (
	StatusAccepted SuggestionStatus = "accepted"
	StatusPending  SuggestionStatus = "pending"
	StatusRejected SuggestionStatus = "rejected"
)

// StatusFromAccepted maps the V1 tri-state accepted flag to a status
func StatusFromAccepted(accepted *bool) SuggestionStatus {
	switch {
	case accepted == nil:
		return StatusPending
	case *accepted:
		return StatusAccepted
	default:
		return StatusRejected
	}
}

// IsDecided reports whether the user already acted on the suggestion
func (s SuggestionStatus) IsDecided() bool {
	return s != StatusPending
}

// Suggestion represents an AI suggested change to a note
type Suggestion struct {
	CreatedAt int64
	DecidedAt *int64
	ID        int64
	NoteID    int64
	Reasoning string
	SessionID int64
	Status    SuggestionStatus
}

// NewSuggestion builds a suggestion migrated at time now (epoch ms).
// Decided suggestions get now as their decision time.
func NewSuggestion(sessionID, noteID int64, reasoning string, accepted *bool, now int64) Suggestion {
	s := Suggestion{
		CreatedAt: now,
		NoteID:    noteID,
		Reasoning: reasoning,
		SessionID: sessionID,
		Status:    StatusFromAccepted(accepted),
	}
	if s.Status.IsDecided() {
		decidedAt := now
		s.DecidedAt = &decidedAt
	}
	return s
}
