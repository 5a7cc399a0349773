package storage

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/ankideku/deku-migrate/internal/domain"
)

func domainToSettingModel(s domain.Setting) SettingModel {
	return SettingModel{
		Key:       s.Key,
		UpdatedAt: s.UpdatedAt,
		Value:     datatypes.JSON(s.Value),
	}
}

func domainToDeckCacheModel(d domain.Deck) DeckCacheModel {
	return DeckCacheModel{
		AnkiID:            d.AnkiID,
		CreatedAt:         d.CreatedAt,
		LastSyncTimestamp: d.LastSyncTimestamp,
		Name:              d.Name,
		UpdatedAt:         d.UpdatedAt,
	}
}

// domainToCachedNoteModel converts a note, encoding its tags as a JSON list
func domainToCachedNoteModel(n domain.CachedNote) (CachedNoteModel, error) {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return CachedNoteModel{}, fmt.Errorf("failed to encode tags of note %d: %w", n.ID, err)
	}

	return CachedNoteModel{
		CreatedAt:       n.CreatedAt,
		DeckID:          n.DeckID,
		DeckName:        n.DeckName,
		EstimatedTokens: n.EstimatedTokens,
		ID:              n.ID,
		ModelName:       n.ModelName,
		Mod:             n.Mod,
		Tags:            datatypes.JSON(encoded),
		UpdatedAt:       n.UpdatedAt,
	}, nil
}

// domainToFieldValueModel spreads the owner over the three nullable owner columns
func domainToFieldValueModel(v domain.FieldValue) (FieldValueModel, error) {
	m := FieldValueModel{
		Context:    string(v.Context),
		FieldName:  v.Name,
		FieldOrder: v.Order,
		FieldValue: v.Value,
	}

	if v.Owner == nil {
		return FieldValueModel{}, fmt.Errorf("field %q has no owner", v.Name)
	}
	id := v.Owner.OwnerID()
	switch v.Owner.(type) {
	case domain.NoteOwner:
		m.NoteID = &id
	case domain.SuggestionOwner:
		m.SuggestionID = &id
	case domain.HistoryOwner:
		m.HistoryID = &id
	default:
		return FieldValueModel{}, fmt.Errorf("field %q has unsupported owner %T", v.Name, v.Owner)
	}
	return m, nil
}

func domainToSessionModel(s domain.Session) SessionModel {
	return SessionModel{
		CreatedAt:                s.CreatedAt,
		DeckID:                   s.DeckID,
		DeckName:                 s.DeckName,
		ExitCode:                 s.ExitCode,
		ProgressFailedBatches:    s.Progress.FailedBatches,
		ProgressInputTokens:      s.Progress.InputTokens,
		ProgressOutputTokens:     s.Progress.OutputTokens,
		ProgressProcessedBatches: s.Progress.ProcessedBatches,
		ProgressProcessedCards:   s.Progress.ProcessedCards,
		ProgressSuggestionsCount: s.Progress.SuggestionsCount,
		ProgressTotalBatches:     s.Progress.TotalBatches,
		ProgressTotalCards:       s.Progress.TotalCards,
		Prompt:                   s.Prompt,
		State:                    string(s.State),
		StateMessage:             s.StateMessage,
		UpdatedAt:                s.UpdatedAt,
	}
}

func domainToSuggestionModel(s domain.Suggestion) SuggestionModel {
	return SuggestionModel{
		CreatedAt: s.CreatedAt,
		DecidedAt: s.DecidedAt,
		NoteID:    s.NoteID,
		Reasoning: s.Reasoning,
		SessionID: s.SessionID,
		Status:    string(s.Status),
	}
}

func domainToHistoryEntryModel(e domain.HistoryEntry) HistoryEntryModel {
	return HistoryEntryModel{
		Action:    e.Action,
		DeckID:    e.DeckID,
		DeckName:  e.DeckName,
		NoteID:    e.NoteID,
		Reasoning: e.Reasoning,
		SessionID: e.SessionID,
		Timestamp: e.Timestamp,
	}
}
