package domain

import "errors"

var (
	ErrDatabaseNotFound    = errors.New("v2 database not found")
	ErrDuplicateSuggestion = errors.New("suggestion already exists for note in session")
	ErrMigrationLocked     = errors.New("another migration is already running")
	ErrSourceNotFound      = errors.New("v1 database directory not found")
)
