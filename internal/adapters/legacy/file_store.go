package legacy

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ankideku/deku-migrate/internal/config"
	"github.com/ankideku/deku-migrate/internal/logging"
	"github.com/ankideku/deku-migrate/internal/ports"
)

// FileStore reads the V1 file based database from disk
type FileStore struct {
	layout   config.Layout
	reporter ports.Reporter
}

// Verify interface compliance at compile time
var _ ports.LegacyStore = (*FileStore)(nil)

// NewFileStore creates a FileStore rooted at root.
// Unreadable documents are reported through reporter and treated as absent.
func NewFileStore(root string, reporter ports.Reporter) *FileStore {
	return &FileStore{
		layout:   config.NewLayout(root),
		reporter: reporter,
	}
}

// ReadDocument reads and parses the JSON document at path.
// A missing file is silently absent; unreadable or malformed files are
// reported as warnings and also treated as absent.
func (s *FileStore) ReadDocument(path string) (any, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false
		}
		s.reporter.Warn("Could not read %s: %v", path, err)
		return nil, false
	}

	doc, err := Decode(data)
	if err != nil {
		s.reporter.Warn("Could not read %s: %v", path, err)
		return nil, false
	}
	return doc, true
}

// readObject reads a document that must be a JSON object
func (s *FileStore) readObject(path string) (Object, bool) {
	doc, ok := s.ReadDocument(path)
	if !ok {
		return nil, false
	}
	obj, ok := doc.(Object)
	if !ok {
		s.reporter.Warn("Could not read %s: expected a JSON object", path)
		return nil, false
	}
	return obj, true
}

// Root returns the V1 database directory
func (s *FileStore) Root() string {
	return s.layout.Root
}

// Settings returns the settings document entries in document order
func (s *FileStore) Settings() ([]ports.SettingEntry, bool) {
	obj, ok := s.readObject(s.layout.SettingsPath())
	if !ok || len(obj) == 0 {
		return nil, false
	}

	entries := make([]ports.SettingEntry, 0, len(obj))
	for _, m := range obj {
		value, err := encodeJSON(m.Value)
		if err != nil {
			s.reporter.Warn("Could not encode setting %s: %v", m.Key, err)
			continue
		}
		entries = append(entries, ports.SettingEntry{Key: m.Key, Value: value})
	}
	return entries, true
}

// HasDecks reports whether the decks directory exists
func (s *FileStore) HasDecks() bool {
	return isDir(s.layout.DecksPath())
}

// Decks returns every readable deck document, sorted by file name
func (s *FileStore) Decks() []ports.DeckDocument {
	paths, err := filepath.Glob(filepath.Join(s.layout.DecksPath(), "*"+config.DocumentExt))
	if err != nil {
		logging.Logger.Warn("Failed to glob deck files", "error", err)
		return nil
	}

	var decks []ports.DeckDocument
	for _, path := range paths {
		obj, ok := s.readObject(path)
		if !ok || len(obj) == 0 {
			continue
		}
		decks = append(decks, s.parseDeck(path, obj))
	}
	return decks
}

func (s *FileStore) parseDeck(path string, obj Object) ports.DeckDocument {
	deck := ports.DeckDocument{
		DeckName: getString(obj, "deckName"),
		Path:     path,
	}
	if deck.DeckName == "" {
		deck.DeckName = strings.TrimSuffix(filepath.Base(path), config.DocumentExt)
	}
	if v, ok := obj.Get("lastSyncTimestamp"); ok {
		deck.LastSyncTimestamp = optionalInt64(v)
	}

	notes, _ := obj.Get("notes")
	items, _ := notes.([]any)
	for i, item := range items {
		note, ok := item.(Object)
		if !ok {
			s.reporter.Warn("Skipping note #%d in %s: not a JSON object", i, path)
			continue
		}
		deck.Notes = append(deck.Notes, parseNote(note))
	}
	return deck
}

func parseNote(obj Object) ports.NoteRecord {
	note := ports.NoteRecord{
		DeckName:  getString(obj, "deckName"),
		ModelName: getString(obj, "modelName"),
	}
	if v, ok := obj.Get("noteId"); ok {
		note.NoteID, _ = toInt64(v)
	}
	if v, ok := obj.Get("mod"); ok {
		note.Mod, _ = toInt64(v)
	}
	tags, _ := obj.Get("tags")
	note.Tags = stringSlice(tags)
	fields, _ := obj.Get("fields")
	note.Fields = structuredFields(fields)
	return note
}

// HasSessions reports whether the sessions directory exists
func (s *FileStore) HasSessions() bool {
	return isDir(s.layout.SessionsPath())
}

// SessionDirs returns the names of all session directories in lexical order
func (s *FileStore) SessionDirs() []string {
	entries, err := os.ReadDir(s.layout.SessionsPath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.reporter.Warn("Could not list %s: %v", s.layout.SessionsPath(), err)
		}
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs
}

// SessionRequest reads request.json of a session directory
func (s *FileStore) SessionRequest(dir string) (*ports.SessionRequest, bool) {
	obj, ok := s.readObject(s.layout.RequestPath(dir))
	if !ok || len(obj) == 0 {
		return nil, false
	}

	req := &ports.SessionRequest{
		DeckName:  getString(obj, "deckName"),
		Prompt:    getString(obj, "prompt"),
		SessionID: getString(obj, "sessionId"),
	}
	if req.SessionID == "" {
		req.SessionID = dir
	}
	if v, ok := obj.Get("totalCards"); ok {
		req.TotalCards, _ = toInt64(v)
	}
	req.Timestamp, _ = obj.Get("timestamp")
	return req, true
}

// SessionState reads state.json of a session directory.
// A state document without a state value counts as completed.
func (s *FileStore) SessionState(dir string) (*ports.SessionStateDocument, bool) {
	obj, ok := s.readObject(s.layout.StatePath(dir))
	if !ok || len(obj) == 0 {
		return nil, false
	}

	state := &ports.SessionStateDocument{State: "completed"}
	if v, ok := obj.Get("state"); ok {
		state.State = stringify(v)
	}
	if v, ok := obj.Get("message"); ok {
		state.Message = optionalString(v)
	}
	if v, ok := obj.Get("exitCode"); ok {
		state.ExitCode = optionalInt64(v)
	}
	state.Timestamp, _ = obj.Get("timestamp")
	return state, true
}

// Suggestions reads every readable suggestion document of a session
func (s *FileStore) Suggestions(dir string) []ports.SuggestionDocument {
	suggestionsDir := s.layout.SuggestionsPath(dir)
	if !isDir(suggestionsDir) {
		return nil
	}

	paths, err := filepath.Glob(filepath.Join(suggestionsDir, "*"+config.DocumentExt))
	if err != nil {
		logging.Logger.Warn("Failed to glob suggestion files", "dir", suggestionsDir, "error", err)
		return nil
	}

	var suggestions []ports.SuggestionDocument
	for _, path := range paths {
		obj, ok := s.readObject(path)
		if !ok || len(obj) == 0 {
			continue
		}

		doc := ports.SuggestionDocument{
			Path:      path,
			Reasoning: getString(obj, "reasoning"),
		}
		if v, ok := obj.Get("noteId"); ok {
			doc.NoteID, _ = toInt64(v)
		}
		if v, ok := obj.Get("accepted"); ok {
			doc.Accepted = optionalBool(v)
		}
		if fields, ok := getObject(obj, "original").Get("fields"); ok {
			doc.OriginalFields = structuredFields(fields)
		}
		changes, _ := obj.Get("changes")
		doc.Changes = flatFields(changes)

		suggestions = append(suggestions, doc)
	}
	return suggestions
}

// History reads history.json of a session directory.
// It is absent unless the document is a non-empty list.
func (s *FileStore) History(dir string) ([]ports.HistoryRecord, bool) {
	path := s.layout.HistoryPath(dir)
	doc, ok := s.ReadDocument(path)
	if !ok {
		return nil, false
	}
	items, ok := doc.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}

	records := make([]ports.HistoryRecord, 0, len(items))
	for i, item := range items {
		obj, ok := item.(Object)
		if !ok {
			s.reporter.Warn("Skipping history entry #%d in %s: not a JSON object", i, path)
			continue
		}
		records = append(records, parseHistoryRecord(obj))
	}
	return records, true
}

func parseHistoryRecord(obj Object) ports.HistoryRecord {
	rec := ports.HistoryRecord{
		Action:   getString(obj, "action"),
		DeckName: getString(obj, "deckName"),
	}
	if v, ok := obj.Get("noteId"); ok {
		rec.NoteID, _ = toInt64(v)
	}
	if v, ok := obj.Get("reasoning"); ok {
		rec.Reasoning = optionalString(v)
	}
	rec.Timestamp, _ = obj.Get("timestamp")

	original, _ := obj.Get("original")
	rec.Original = flatFields(original)
	changes, _ := obj.Get("changes")
	rec.Changes = flatFields(changes)
	applied, _ := obj.Get("appliedChanges")
	rec.AppliedChanges = flatFields(applied)
	userEdits, _ := obj.Get("userEdits")
	rec.UserEdits = flatFields(userEdits)
	return rec
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
