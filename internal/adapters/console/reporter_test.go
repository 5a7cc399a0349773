package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporter_WritesPlainTextWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Stage(1, 4, "Migrating settings...")
	r.Info("Migrated setting: %s", "theme")
	r.Done("%d settings migrated.", 1)

	out := buf.String()
	assert.Contains(t, out, "[1/4] Migrating settings...")
	assert.Contains(t, out, "  Migrated setting: theme")
	assert.Contains(t, out, "Done: 1 settings migrated.")
	assert.NotContains(t, out, "\x1b[", "no ANSI escapes for non-terminal output")
}

func TestReporter_CountsWarnings(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Warn("Could not read %s", "decks/broken.json")
	r.Warn("No session mapping for %s, skipping", "orphan")

	assert.Equal(t, 2, r.Warnings())
	assert.Contains(t, buf.String(), "Warning: Could not read decks/broken.json")
	assert.Contains(t, buf.String(), "Warning: No session mapping for orphan, skipping")
}

func TestReporter_Table(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Table([][2]string{{"Decks", "1"}, {"Suggestions", "12"}})

	assert.Contains(t, buf.String(), "Decks:")
	assert.Contains(t, buf.String(), "Suggestions:")
	assert.Contains(t, buf.String(), "12")
}
