package services

import (
	"context"
	"fmt"

	"github.com/ankideku/deku-migrate/internal/domain"
	"github.com/ankideku/deku-migrate/internal/ports"
)

// MigrateDecks upserts every deck document, its notes and their current fields.
// It returns the deck and note counts.
func (s *MigrationService) MigrateDecks(ctx context.Context) (int, int, error) {
	s.reporter.Stage(2, StageCount, "Migrating deck caches...")

	if !s.source.HasDecks() {
		s.reporter.Info("No decks directory found, skipping.")
		return 0, 0, nil
	}

	decks := s.source.Decks()
	now := s.nowMillis()
	deckCount, noteCount := 0, 0

	err := s.target.Transaction(ctx, func(w ports.MigrationWriter) error {
		for _, doc := range decks {
			deck := domain.Deck{
				AnkiID:            domain.SyntheticDeckID(doc.DeckName),
				CreatedAt:         now,
				LastSyncTimestamp: doc.LastSyncTimestamp,
				Name:              doc.DeckName,
				UpdatedAt:         now,
			}
			if err := w.UpsertDeck(ctx, deck); err != nil {
				return err
			}
			deckCount++

			migrated, err := s.migrateNotes(ctx, w, doc, now)
			if err != nil {
				return err
			}
			noteCount += migrated
			s.reporter.Info("Migrated deck: %s (%d notes)", doc.DeckName, len(doc.Notes))
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	s.reporter.Done("%d decks, %d notes migrated.", deckCount, noteCount)
	return deckCount, noteCount, nil
}

func (s *MigrationService) migrateNotes(ctx context.Context, w ports.MigrationWriter, doc ports.DeckDocument, now int64) (int, error) {
	count := 0
	for i, rec := range doc.Notes {
		if rec.NoteID == 0 {
			s.skip(stageDecks, "Skipping note #%d in deck %s: no noteId", i, doc.DeckName)
			continue
		}

		// Notes may belong to a different deck than the file they are cached in
		deckName := rec.DeckName
		if deckName == "" {
			deckName = doc.DeckName
		}

		note := domain.CachedNote{
			CreatedAt:       now,
			DeckID:          domain.SyntheticDeckID(deckName),
			DeckName:        deckName,
			EstimatedTokens: domain.EstimateTokens(rec.Fields),
			ID:              rec.NoteID,
			ModelName:       rec.ModelName,
			Mod:             rec.Mod,
			Tags:            rec.Tags,
			UpdatedAt:       now,
		}
		if err := w.UpsertNote(ctx, note); err != nil {
			return count, err
		}

		values, unnamed := domain.BuildFieldValues(domain.NoteOwner(rec.NoteID), domain.ContextCurrent, rec.Fields)
		s.reportUnnamed(stageDecks, unnamed, fmt.Sprintf("note %d", rec.NoteID))
		if err := w.ReplaceNoteFields(ctx, rec.NoteID, values); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
