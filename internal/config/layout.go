package config

import "path/filepath"

// V1 file store layout
const (
	DecksDir       = "decks"
	DocumentExt    = ".json"
	HistoryFile    = "history.json"
	RequestFile    = "request.json"
	SessionsDir    = "ai-sessions"
	SettingsFile   = "settings.json"
	StateFile      = "state.json"
	SuggestionsDir = "suggestions"
)

// DefaultSourceDir is the V1 database directory, relative to the working directory
const DefaultSourceDir = "database"

// Layout resolves V1 file store paths against a root directory
type Layout struct {
	Root string
}

// NewLayout creates a Layout rooted at root
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// SettingsPath returns <root>/settings.json
func (l Layout) SettingsPath() string {
	return filepath.Join(l.Root, SettingsFile)
}

// DecksPath returns <root>/decks
func (l Layout) DecksPath() string {
	return filepath.Join(l.Root, DecksDir)
}

// SessionsPath returns <root>/ai-sessions
func (l Layout) SessionsPath() string {
	return filepath.Join(l.Root, SessionsDir)
}

// SessionPath returns the directory of one session
func (l Layout) SessionPath(dir string) string {
	return filepath.Join(l.SessionsPath(), dir)
}

// RequestPath returns the request document of a session
func (l Layout) RequestPath(dir string) string {
	return filepath.Join(l.SessionPath(dir), RequestFile)
}

// StatePath returns the state document of a session
func (l Layout) StatePath(dir string) string {
	return filepath.Join(l.SessionPath(dir), StateFile)
}

// HistoryPath returns the history document of a session
func (l Layout) HistoryPath(dir string) string {
	return filepath.Join(l.SessionPath(dir), HistoryFile)
}

// SuggestionsPath returns the suggestions directory of a session
func (l Layout) SuggestionsPath(dir string) string {
	return filepath.Join(l.SessionPath(dir), SuggestionsDir)
}
