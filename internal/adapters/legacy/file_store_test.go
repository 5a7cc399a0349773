package legacy

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	warnings []string
}

func (r *recordingReporter) Stage(int, int, string) {}
func (r *recordingReporter) Info(string, ...any)    {}
func (r *recordingReporter) Done(string, ...any)    {}

func (r *recordingReporter) Warn(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func writeFile(t *testing.T, root string, rel string, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFileStore_ReadDocument(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.json", `{"a":1}`)
	writeFile(t, root, "bad.json", `{"a":`)
	reporter := &recordingReporter{}
	store := NewFileStore(root, reporter)

	doc, ok := store.ReadDocument(filepath.Join(root, "good.json"))
	assert.True(t, ok)
	assert.IsType(t, Object{}, doc)

	_, ok = store.ReadDocument(filepath.Join(root, "missing.json"))
	assert.False(t, ok)
	assert.Empty(t, reporter.warnings, "missing files are silently absent")

	_, ok = store.ReadDocument(filepath.Join(root, "bad.json"))
	assert.False(t, ok)
	require.Len(t, reporter.warnings, 1)
	assert.Contains(t, reporter.warnings[0], "bad.json")
}

func TestFileStore_Settings(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "settings.json", `{"theme":"dark","limits":{"max":5,"tags":["a","b"]},"sound":true}`)
	store := NewFileStore(root, &recordingReporter{})

	entries, ok := store.Settings()

	require.True(t, ok)
	require.Len(t, entries, 3)
	assert.Equal(t, "theme", entries[0].Key)
	assert.Equal(t, `"dark"`, string(entries[0].Value))
	assert.Equal(t, "limits", entries[1].Key)
	assert.Equal(t, `{"max":5,"tags":["a","b"]}`, string(entries[1].Value))
	assert.Equal(t, `true`, string(entries[2].Value))
}

func TestFileStore_SettingsKeepHTMLCharacters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "settings.json", `{"prompt":"a<b & c","nested":{"prompt":"x>y"}}`)
	store := NewFileStore(root, &recordingReporter{})

	entries, ok := store.Settings()

	require.True(t, ok)
	require.Len(t, entries, 2)
	assert.Equal(t, `"a<b & c"`, string(entries[0].Value))
	assert.Equal(t, `{"prompt":"x>y"}`, string(entries[1].Value))
}

func TestFileStore_SettingsAbsent(t *testing.T) {
	store := NewFileStore(t.TempDir(), &recordingReporter{})

	entries, ok := store.Settings()

	assert.False(t, ok)
	assert.Empty(t, entries)
}

func TestFileStore_Decks(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "decks/b.json", `{
		"deckName": "Spanish",
		"lastSyncTimestamp": 1700000000000,
		"notes": [
			{"noteId": 11, "modelName": "Basic", "mod": 1699999999, "tags": ["verb"],
			 "fields": {"Front": {"value": "hablar", "order": 0}, "Back": {"value": "to speak", "order": 1}}},
			"not a note",
			{"modelName": "Basic"}
		]
	}`)
	writeFile(t, root, "decks/a.json", `{"notes": []}`)
	writeFile(t, root, "decks/c.json", `[1, 2]`)
	writeFile(t, root, "decks/readme.txt", `ignored`)
	reporter := &recordingReporter{}
	store := NewFileStore(root, reporter)

	require.True(t, store.HasDecks())
	decks := store.Decks()

	require.Len(t, decks, 2)
	assert.Equal(t, "a", decks[0].DeckName, "deck name falls back to the file stem")
	assert.Empty(t, decks[0].Notes)

	spanish := decks[1]
	assert.Equal(t, "Spanish", spanish.DeckName)
	require.NotNil(t, spanish.LastSyncTimestamp)
	assert.Equal(t, int64(1700000000000), *spanish.LastSyncTimestamp)
	require.Len(t, spanish.Notes, 2)

	note := spanish.Notes[0]
	assert.Equal(t, int64(11), note.NoteID)
	assert.Equal(t, "Basic", note.ModelName)
	assert.Equal(t, int64(1699999999), note.Mod)
	assert.Equal(t, []string{"verb"}, note.Tags)
	require.Len(t, note.Fields, 2)
	assert.Equal(t, "Front", note.Fields[0].Name)
	assert.Equal(t, "to speak", note.Fields[1].Value)
	assert.Equal(t, 1, note.Fields[1].Order)

	assert.Zero(t, spanish.Notes[1].NoteID)
	assert.Equal(t, []string{}, spanish.Notes[1].Tags)

	assert.Len(t, reporter.warnings, 2, "one non-object note and one non-object deck document")
}

func TestFileStore_NoDecksDirectory(t *testing.T) {
	store := NewFileStore(t.TempDir(), &recordingReporter{})

	assert.False(t, store.HasDecks())
	assert.Empty(t, store.Decks())
}

func TestFileStore_SessionDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ai-sessions/session-2/request.json", `{}`)
	writeFile(t, root, "ai-sessions/session-1/request.json", `{}`)
	writeFile(t, root, "ai-sessions/stray.json", `{}`)
	store := NewFileStore(root, &recordingReporter{})

	require.True(t, store.HasSessions())
	assert.Equal(t, []string{"session-1", "session-2"}, store.SessionDirs())
}

func TestFileStore_SessionRequest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ai-sessions/s1/request.json",
		`{"sessionId":"abc","deckName":"Spanish","prompt":"Fix typos","totalCards":"12","timestamp":"2024-01-15T10:30:00"}`)
	writeFile(t, root, "ai-sessions/s2/request.json", `{"deckName":"French"}`)
	store := NewFileStore(root, &recordingReporter{})

	req, ok := store.SessionRequest("s1")
	require.True(t, ok)
	assert.Equal(t, "abc", req.SessionID)
	assert.Equal(t, "Spanish", req.DeckName)
	assert.Equal(t, "Fix typos", req.Prompt)
	assert.Equal(t, int64(12), req.TotalCards)
	assert.Equal(t, "2024-01-15T10:30:00", req.Timestamp)

	req, ok = store.SessionRequest("s2")
	require.True(t, ok)
	assert.Equal(t, "s2", req.SessionID, "session id falls back to the directory name")
	assert.Zero(t, req.TotalCards)
	assert.Nil(t, req.Timestamp)

	_, ok = store.SessionRequest("missing")
	assert.False(t, ok)
}

func TestFileStore_SessionState(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ai-sessions/s1/state.json", `{"state":"failed","message":"boom","exitCode":2}`)
	writeFile(t, root, "ai-sessions/s2/state.json", `{"timestamp":1700000000000}`)
	store := NewFileStore(root, &recordingReporter{})

	state, ok := store.SessionState("s1")
	require.True(t, ok)
	assert.Equal(t, "failed", state.State)
	require.NotNil(t, state.Message)
	assert.Equal(t, "boom", *state.Message)
	require.NotNil(t, state.ExitCode)
	assert.Equal(t, int64(2), *state.ExitCode)

	state, ok = store.SessionState("s2")
	require.True(t, ok)
	assert.Equal(t, "completed", state.State)
	assert.Nil(t, state.Message)
	assert.Nil(t, state.ExitCode)

	_, ok = store.SessionState("s3")
	assert.False(t, ok)
}

func TestFileStore_Suggestions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ai-sessions/s1/suggestions/002.json",
		`{"noteId":22,"accepted":false,"reasoning":"r2","changes":{"Back":"B"}}`)
	writeFile(t, root, "ai-sessions/s1/suggestions/001.json", `{
		"noteId": 11,
		"accepted": true,
		"reasoning": "typo",
		"original": {"fields": {"Front": {"value": "helo", "order": 0}}},
		"changes": {"Front": "hello"}
	}`)
	writeFile(t, root, "ai-sessions/s1/suggestions/003.json", `{"noteId":33}`)
	store := NewFileStore(root, &recordingReporter{})

	suggestions := store.Suggestions("s1")

	require.Len(t, suggestions, 3)
	first := suggestions[0]
	assert.Equal(t, int64(11), first.NoteID)
	require.NotNil(t, first.Accepted)
	assert.True(t, *first.Accepted)
	assert.Equal(t, "typo", first.Reasoning)
	require.Len(t, first.OriginalFields, 1)
	assert.Equal(t, "helo", first.OriginalFields[0].Value)
	require.Len(t, first.Changes, 1)
	assert.Equal(t, "hello", first.Changes[0].Value)

	require.NotNil(t, suggestions[1].Accepted)
	assert.False(t, *suggestions[1].Accepted)
	assert.Nil(t, suggestions[2].Accepted)
	assert.Empty(t, suggestions[2].OriginalFields)
}

func TestFileStore_SuggestionsMissingDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ai-sessions/s1/request.json", `{}`)
	store := NewFileStore(root, &recordingReporter{})

	assert.Empty(t, store.Suggestions("s1"))
}

func TestFileStore_History(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ai-sessions/s1/history.json", `[
		{"noteId": 11, "deckName": "Spanish", "action": "accept", "timestamp": 1700000000000,
		 "original": {"Front": "helo"}, "changes": {"Front": "hello"},
		 "appliedChanges": {"Front": "hello!"}, "userEdits": {"Front": "hello!"}, "reasoning": "typo"},
		42,
		{"deckName": "Spanish"}
	]`)
	writeFile(t, root, "ai-sessions/s2/history.json", `{"not":"a list"}`)
	writeFile(t, root, "ai-sessions/s3/history.json", `[]`)
	reporter := &recordingReporter{}
	store := NewFileStore(root, reporter)

	records, ok := store.History("s1")
	require.True(t, ok)
	require.Len(t, records, 2)
	rec := records[0]
	assert.Equal(t, int64(11), rec.NoteID)
	assert.Equal(t, "accept", rec.Action)
	assert.Equal(t, "Spanish", rec.DeckName)
	require.NotNil(t, rec.Reasoning)
	assert.Equal(t, "typo", *rec.Reasoning)
	assert.Len(t, rec.Original, 1)
	assert.Len(t, rec.Changes, 1)
	assert.Len(t, rec.AppliedChanges, 1)
	assert.Len(t, rec.UserEdits, 1)
	assert.Zero(t, records[1].NoteID)
	assert.Nil(t, records[1].Reasoning)
	assert.Len(t, reporter.warnings, 1)

	_, ok = store.History("s2")
	assert.False(t, ok)
	_, ok = store.History("s3")
	assert.False(t, ok)
	_, ok = store.History("s4")
	assert.False(t, ok)
}
