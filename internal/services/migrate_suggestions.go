package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ankideku/deku-migrate/internal/domain"
	"github.com/ankideku/deku-migrate/internal/ports"
)

// MigrateSuggestionsAndHistory inserts the suggestions and history entries of
// every session migrated by MigrateSessions. Directories missing from ids are
// skipped with a warning. It returns the suggestion and history counts.
func (s *MigrationService) MigrateSuggestionsAndHistory(ctx context.Context, ids *domain.SessionIDMap) (int, int, error) {
	s.reporter.Stage(4, StageCount, "Migrating suggestions and history...")

	if !s.source.HasSessions() {
		s.reporter.Info("No ai-sessions directory found, skipping.")
		return 0, 0, nil
	}

	now := s.clock()
	suggestionCount, historyCount := 0, 0
	err := s.target.Transaction(ctx, func(w ports.MigrationWriter) error {
		for _, dir := range s.source.SessionDirs() {
			sessionID, ok := ids.ForDirectory(dir)
			if !ok {
				s.skip(stageSuggestions, "No session mapping for %s, skipping", dir)
				continue
			}

			n, err := s.migrateSuggestions(ctx, w, dir, sessionID, now.UnixMilli())
			if err != nil {
				return err
			}
			suggestionCount += n

			n, err = s.migrateHistory(ctx, w, dir, sessionID, now)
			if err != nil {
				return err
			}
			historyCount += n
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	s.reporter.Done("%d suggestions, %d history entries migrated.", suggestionCount, historyCount)
	return suggestionCount, historyCount, nil
}

func (s *MigrationService) migrateSuggestions(ctx context.Context, w ports.MigrationWriter, dir string, sessionID int64, now int64) (int, error) {
	count := 0
	for _, doc := range s.source.Suggestions(dir) {
		name := filepath.Base(doc.Path)
		if doc.NoteID == 0 {
			s.skip(stageSuggestions, "Skipping suggestion %s in %s: no noteId", name, dir)
			continue
		}

		suggestion := domain.NewSuggestion(sessionID, doc.NoteID, doc.Reasoning, doc.Accepted, now)
		id, err := w.InsertSuggestion(ctx, suggestion)
		if errors.Is(err, domain.ErrDuplicateSuggestion) {
			s.skip(stageSuggestions, "Duplicate suggestion for note %d: %v", doc.NoteID, err)
			continue
		}
		if err != nil {
			return count, err
		}

		owner := domain.SuggestionOwner(id)
		original, unnamed := domain.BuildFieldValues(owner, domain.ContextOriginal, doc.OriginalFields)
		changes, unnamedChanges := domain.BuildFieldValues(owner, domain.ContextChanges, doc.Changes)
		s.reportUnnamed(stageSuggestions, unnamed+unnamedChanges, fmt.Sprintf("suggestion %s in %s", name, dir))
		if err := w.InsertFieldValues(ctx, append(original, changes...)); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (s *MigrationService) migrateHistory(ctx context.Context, w ports.MigrationWriter, dir string, sessionID int64, now time.Time) (int, error) {
	records, ok := s.source.History(dir)
	if !ok {
		return 0, nil
	}

	count := 0
	for i, rec := range records {
		if rec.NoteID == 0 {
			s.skip(stageHistory, "Skipping history entry #%d in %s: no noteId", i, dir)
			continue
		}

		action := rec.Action
		if action == "" {
			action = domain.DefaultHistoryAction
		}
		entry := domain.HistoryEntry{
			Action:    action,
			DeckID:    domain.SyntheticDeckID(rec.DeckName),
			DeckName:  rec.DeckName,
			NoteID:    rec.NoteID,
			Reasoning: rec.Reasoning,
			SessionID: sessionID,
			Timestamp: domain.NormalizeTimestamp(rec.Timestamp, now),
		}
		id, err := w.InsertHistoryEntry(ctx, entry)
		if err != nil {
			return count, err
		}

		owner := domain.HistoryOwner(id)
		var values []domain.FieldValue
		unnamed := 0
		for _, snapshot := range historySnapshots(rec) {
			built, n := domain.BuildFieldValues(owner, snapshot.context, snapshot.fields)
			values = append(values, built...)
			unnamed += n
		}
		s.reportUnnamed(stageHistory, unnamed, fmt.Sprintf("history entry #%d in %s", i, dir))
		if err := w.InsertFieldValues(ctx, values); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// fieldSnapshot is one field map of a history entry with the context it is stored under
type fieldSnapshot struct {
	context domain.FieldContext
	fields  []domain.Field
}

func historySnapshots(rec ports.HistoryRecord) []fieldSnapshot {
	return []fieldSnapshot{
		{context: domain.ContextOriginal, fields: rec.Original},
		{context: domain.ContextAIChanges, fields: rec.Changes},
		{context: domain.ContextApplied, fields: rec.AppliedChanges},
		{context: domain.ContextUserEdits, fields: rec.UserEdits},
	}
}
