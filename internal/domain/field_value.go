package domain

// FieldContext tells which view of a note a FieldValue belongs to
type FieldContext string

const (
	ContextAIChanges FieldContext = "ai_changes"
	ContextApplied   FieldContext = "applied"
	ContextChanges   FieldContext = "changes"
	ContextCurrent   FieldContext = "current"
	ContextOriginal  FieldContext = "original"
	ContextUserEdits FieldContext = "user_edits"
)

// FieldOwner is the row a FieldValue hangs off.
// It is one of NoteOwner, SuggestionOwner or HistoryOwner.
type FieldOwner interface {
	OwnerID() int64
	fieldOwner()
}

// NoteOwner owns the fields of a cached note
type NoteOwner int64

// SuggestionOwner owns the fields of a suggestion
type SuggestionOwner int64

// HistoryOwner owns the fields of a history entry
type HistoryOwner int64

func (o NoteOwner) OwnerID() int64       { return int64(o) }
func (o SuggestionOwner) OwnerID() int64 { return int64(o) }
func (o HistoryOwner) OwnerID() int64    { return int64(o) }

func (NoteOwner) fieldOwner()       {}
func (SuggestionOwner) fieldOwner() {}
func (HistoryOwner) fieldOwner()    {}

// FieldValue is a single named field of a note snapshot
type FieldValue struct {
	Context FieldContext
	Name    string
	Order   int
	Owner   FieldOwner
	Value   string
}

// Field is a named value with its position, as read from a legacy document
type Field struct {
	Name  string
	Order int
	Value string
}

// BuildFieldValues attaches fields to an owner under the given context.
// Fields with an empty name are returned separately so callers can report them.
func BuildFieldValues(owner FieldOwner, ctx FieldContext, fields []Field) (values []FieldValue, unnamed int) {
	values = make([]FieldValue, 0, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			unnamed++
			continue
		}
		values = append(values, FieldValue{
			Context: ctx,
			Name:    f.Name,
			Order:   f.Order,
			Owner:   owner,
			Value:   f.Value,
		})
	}
	return values, unnamed
}
