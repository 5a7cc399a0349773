package domain

import "github.com/cespare/xxhash/v2"

// NoDeckID is the deck id used when a record carries no deck name
const NoDeckID int64 = 0

const deckIDSpace = 1 << 31

// SyntheticDeckID derives a stable deck id from a deck name.
// V1 decks have no ids of their own; the name hash is reduced into the
// positive 31-bit range used by deck_cache.anki_id. Distinct names can collide.
func SyntheticDeckID(name string) int64 {
	if name == "" {
		return NoDeckID
	}
	return int64(xxhash.Sum64String(name) % deckIDSpace)
}

// Deck represents a cached Anki deck
type Deck struct {
	AnkiID            int64
	CreatedAt         int64
	LastSyncTimestamp *int64
	Name              string
	UpdatedAt         int64
}

// CachedNote represents a cached Anki note
type CachedNote struct {
	CreatedAt       int64
	DeckID          int64
	DeckName        string
	EstimatedTokens *int64
	ID              int64
	ModelName       string
	Mod             int64
	Tags            []string
	UpdatedAt       int64
}
