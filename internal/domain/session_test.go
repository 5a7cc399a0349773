package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapLegacySessionState(t *testing.T) {
	tests := []struct {
		legacy   string
		expected SessionState
	}{
		{"pending", StatePending},
		{"running", StateRunning},
		{"completed", StateCompleted},
		{"failed", StateFailed},
		{"cancelled", StateCancelled},
		{"unknown", StateIncomplete},
		{"exploded", StateIncomplete},
		{"", StateIncomplete},
		{"Completed", StateIncomplete},
	}

	for _, tt := range tests {
		t.Run(tt.legacy, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapLegacySessionState(tt.legacy))
		})
	}
}

func TestSessionIDMap_RecordAndForDirectory(t *testing.T) {
	m := NewSessionIDMap()
	m.Record("session-a", 7)
	m.Record("session-b", 8)

	id, ok := m.ForDirectory("session-a")
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	id, ok = m.ForDirectory("session-b")
	assert.True(t, ok)
	assert.Equal(t, int64(8), id)

	assert.Equal(t, 2, m.Len())
}

func TestSessionIDMap_MissingDirectory(t *testing.T) {
	m := NewSessionIDMap()
	m.Record("session-a", 7)

	_, ok := m.ForDirectory("session-z")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}
