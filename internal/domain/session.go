package domain

// SessionState represents the lifecycle state of a V2 AI session
type SessionState string

const (
	StateCancelled  SessionState = "cancelled"
	StateCompleted  SessionState = "completed"
	StateFailed     SessionState = "failed"
	StateIncomplete SessionState = "incomplete"
	StatePending    SessionState = "pending"
	StateRunning    SessionState = "running"
)

// LegacyStateUnknown is the state assumed for a V1 session without a state document
const LegacyStateUnknown = "unknown"

// legacyStates maps V1 state strings onto V2 states
var legacyStates = map[string]SessionState{
	"pending":          StatePending,
	"running":          StateRunning,
	"completed":        StateCompleted,
	"failed":           StateFailed,
	"cancelled":        StateCancelled,
	LegacyStateUnknown: StateIncomplete,
}

// MapLegacySessionState converts a V1 state string to a V2 SessionState.
// Unrecognized values map to StateIncomplete.
func MapLegacySessionState(legacy string) SessionState {
	if state, ok := legacyStates[legacy]; ok {
		return state
	}
	return StateIncomplete
}

// SessionProgress holds the progress counters of a session
type SessionProgress struct {
	FailedBatches    int64
	InputTokens      int64
	OutputTokens     int64
	ProcessedBatches int64
	ProcessedCards   int64
	SuggestionsCount int64
	TotalBatches     int64
	TotalCards       int64
}

// Session represents a V2 AI review session (domain entity)
type Session struct {
	CreatedAt    int64
	DeckID       int64
	DeckName     string
	ExitCode     *int64
	ID           int64
	Progress     SessionProgress
	Prompt       string
	State        SessionState
	StateMessage *string
	UpdatedAt    int64
}

// SessionIDMap links each legacy session directory to the integer id
// assigned by the V2 database during one migration run.
type SessionIDMap struct {
	byDirectory map[string]int64
}

// NewSessionIDMap creates an empty SessionIDMap
func NewSessionIDMap() *SessionIDMap {
	return &SessionIDMap{byDirectory: make(map[string]int64)}
}

// Record stores the new id for the session read from directory dir
func (m *SessionIDMap) Record(dir string, id int64) {
	m.byDirectory[dir] = id
}

// ForDirectory returns the new id of the session migrated from directory dir
func (m *SessionIDMap) ForDirectory(dir string) (int64, bool) {
	id, ok := m.byDirectory[dir]
	return id, ok
}

// Len returns the number of migrated session directories
func (m *SessionIDMap) Len() int {
	return len(m.byDirectory)
}
