package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyntheticDeckID_Deterministic(t *testing.T) {
	names := []string{"Default", "Japanese::Vocab", "日本語", "a"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			first := SyntheticDeckID(name)
			for i := 0; i < 5; i++ {
				assert.Equal(t, first, SyntheticDeckID(name))
			}
		})
	}
}

func TestSyntheticDeckID_Range(t *testing.T) {
	for _, name := range []string{"Default", "Spanish", "Kanji::N5", "x"} {
		id := SyntheticDeckID(name)
		assert.GreaterOrEqual(t, id, int64(0))
		assert.Less(t, id, int64(1<<31))
	}
}

func TestSyntheticDeckID_EmptyNameIsNoDeck(t *testing.T) {
	assert.Equal(t, NoDeckID, SyntheticDeckID(""))
}

func TestSyntheticDeckID_NoCollisionsInRealisticCorpus(t *testing.T) {
	names := []string{
		"Default", "Japanese", "Japanese::Vocab", "Japanese::Kanji", "Japanese::Grammar",
		"Spanish", "Spanish::Verbs", "French", "German::Nouns", "Medicine::Anatomy",
		"Medicine::Pharmacology", "Programming::Go", "Programming::Rust", "History",
		"Geography::Capitals", "Geography::Flags", "Music Theory", "Chemistry", "Physics",
	}

	seen := make(map[int64]string, len(names))
	for _, name := range names {
		id := SyntheticDeckID(name)
		if other, ok := seen[id]; ok {
			t.Fatalf("deck ids collide: %q and %q -> %d", other, name, id)
		}
		seen[id] = name
	}
}
