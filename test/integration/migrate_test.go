package integration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ankideku/deku-migrate/internal/adapters/storage/storagetest"
	"github.com/ankideku/deku-migrate/test/integration/harness"
)

const spanishDeck = `{
  "deckName": "Spanish",
  "notes": [
    {"noteId": 1, "modelName": "Basic", "tags": ["verbs"], "mod": 1700000000,
     "fields": {"Front": {"value": "hablar", "order": 0}, "Back": {"value": "to speak", "order": 1}}},
    {"noteId": 2, "modelName": "Basic", "tags": [], "mod": 1700000001,
     "fields": {"Front": {"value": "comer", "order": 0}}}
  ]
}`

func writeFullSource(env *harness.TestEnvironment) {
	env.WriteSource("settings.json", `{"theme": "dark", "batchSize": 10}`)
	env.WriteSource("decks/Spanish.json", spanishDeck)
	env.WriteSource("ai-sessions/session-1/request.json",
		`{"sessionId": "session-1", "deckName": "Spanish", "prompt": "fix typos", "totalCards": 2, "timestamp": "2024-01-01T00:00:00Z"}`)
	env.WriteSource("ai-sessions/session-1/state.json", `{"state": "completed", "timestamp": 1704067300}`)
	env.WriteSource("ai-sessions/session-1/suggestions/1.json",
		`{"noteId": 1, "accepted": true, "reasoning": "typo", "original": {"fields": {"Front": {"value": "hablar", "order": 0}}}, "changes": {"Front": "hablar!"}}`)
	env.WriteSource("ai-sessions/session-1/history.json",
		`[{"noteId": 1, "deckName": "Spanish", "action": "accept", "timestamp": 1704067400, "original": {"Front": "hablar"}, "changes": {"Front": "hablar!"}}]`)
}

func TestMigrate(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(t *testing.T, env *harness.TestEnvironment)
		args         []string
		wantExitCode int
		validate     func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult)
	}{
		{
			name:         "full migration",
			setup:        func(t *testing.T, env *harness.TestEnvironment) { writeFullSource(env) },
			args:         []string{"migrate", "--yes"},
			wantExitCode: 0,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Migration Complete!")
				harness.AssertStdoutNotContains(t, result, "Warning:")
				assert.Equal(t, 2, storagetest.Count(t, env.DBPath(), "setting", ""))
				assert.Equal(t, 1, storagetest.Count(t, env.DBPath(), "deck_cache", ""))
				assert.Equal(t, 2, storagetest.Count(t, env.DBPath(), "cached_note", ""))
				assert.Equal(t, 1, storagetest.Count(t, env.DBPath(), "session", ""))
				assert.Equal(t, 1, storagetest.Count(t, env.DBPath(), "suggestion", "status = ?", "accepted"))
				assert.Equal(t, 1, storagetest.Count(t, env.DBPath(), "history_entry", ""))
			},
		},
		{
			name:         "migrate is the default command",
			setup:        func(t *testing.T, env *harness.TestEnvironment) { writeFullSource(env) },
			args:         []string{"--yes"},
			wantExitCode: 0,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "[1/4]")
				harness.AssertStdoutContains(t, result, "[4/4]")
			},
		},
		{
			name:         "dry run leaves the database untouched",
			setup:        func(t *testing.T, env *harness.TestEnvironment) { writeFullSource(env) },
			args:         []string{"migrate", "--dry-run"},
			wantExitCode: 0,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Dry Run Complete!")
				harness.AssertStdoutNotContains(t, result, "Data migrated to:")
				assert.Equal(t, 0, storagetest.Count(t, env.DBPath(), "cached_note", ""))
				assert.Equal(t, 0, storagetest.Count(t, env.DBPath(), "session", ""))
			},
		},
		{
			name: "orphan session directory is skipped",
			setup: func(t *testing.T, env *harness.TestEnvironment) {
				env.WriteSource("ai-sessions/orphan/suggestions/1.json", `{"noteId": 1, "accepted": true}`)
			},
			args:         []string{"migrate", "--yes"},
			wantExitCode: 0,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "No session mapping for orphan, skipping")
				assert.Equal(t, 0, storagetest.Count(t, env.DBPath(), "suggestion", ""))
			},
		},
		{
			name: "malformed documents do not fail the run",
			setup: func(t *testing.T, env *harness.TestEnvironment) {
				env.WriteSource("decks/Broken.json", `{"deckName": "Broken", "notes": [`)
				env.WriteSource("decks/Spanish.json", spanishDeck)
			},
			args:         []string{"migrate", "--yes"},
			wantExitCode: 0,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Could not read")
				assert.Equal(t, 2, storagetest.Count(t, env.DBPath(), "cached_note", ""))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := harness.NewTestEnvironment(t)
			if tt.setup != nil {
				tt.setup(t, env)
			}

			result := harness.RunCommand(t, env, tt.args...)

			harness.AssertExitCode(t, result, tt.wantExitCode)
			if tt.validate != nil {
				tt.validate(t, env, result)
			}
		})
	}
}

func TestMigrate_RerunAppendsSessions(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	writeFullSource(env)

	harness.AssertSuccess(t, harness.RunCommand(t, env, "migrate", "--yes"))
	harness.AssertSuccess(t, harness.RunCommand(t, env, "migrate", "--yes"))

	assert.Equal(t, 2, storagetest.Count(t, env.DBPath(), "cached_note", ""))
	assert.Equal(t, 2, storagetest.Count(t, env.DBPath(), "session", ""))
	assert.Equal(t, 2, storagetest.Count(t, env.DBPath(), "history_entry", ""))
}

func TestMigrate_MissingDatabase(t *testing.T) {
	env := harness.NewEmptyEnvironment(t)
	writeFullSource(env)

	result := harness.RunCommand(t, env, "migrate", "--yes")

	harness.AssertExitCode(t, result, 1)
	harness.AssertStdoutContains(t, result, "Please run the application first to initialize the database.")
	harness.AssertStderrContains(t, result, "v2 database not found")
	assert.NoFileExists(t, env.DBPath())
}

func TestMigrate_MissingSource(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.SetEnv("DEKU_SOURCE", env.SourceRoot+"-missing")

	result := harness.RunCommand(t, env, "migrate", "--yes")

	harness.AssertExitCode(t, result, 1)
	harness.AssertStderrContains(t, result, "v1 database directory not found")
}

func TestPaths(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "paths")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, env.DBPath())
	harness.AssertStdoutContains(t, result, env.SourceRoot)
}
