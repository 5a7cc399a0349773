package services

import (
	"context"

	"github.com/ankideku/deku-migrate/internal/domain"
	"github.com/ankideku/deku-migrate/internal/logging"
	"github.com/ankideku/deku-migrate/internal/ports"
)

// MigrateSessions inserts one session per session directory holding a request
// document. The returned map links each directory to the new row id; it is the only input the suggestion stage resolves against.
func (s *MigrationService) MigrateSessions(ctx context.Context) (*domain.SessionIDMap, int, error) {
	s.reporter.Stage(3, StageCount, "Migrating sessions...")

	ids := domain.NewSessionIDMap()
	if !s.source.HasSessions() {
		s.reporter.Info("No ai-sessions directory found, skipping.")
		return ids, 0, nil
	}

	now := s.clock()
	count := 0
	err := s.target.Transaction(ctx, func(w ports.MigrationWriter) error {
		for _, dir := range s.source.SessionDirs() {
			req, ok := s.source.SessionRequest(dir)
			if !ok {
				continue
			}
			state, hasState := s.source.SessionState(dir)

			session := buildSession(req, state, hasState, now.UnixMilli())
			session.CreatedAt = domain.NormalizeTimestamp(req.Timestamp, now)
			if hasState {
				session.UpdatedAt = domain.NormalizeTimestamp(state.Timestamp, now)
			}

			id, err := w.InsertSession(ctx, session)
			if err != nil {
				return err
			}
			ids.Record(dir, id)
			if req.SessionID != dir {
				logging.Logger.Debug("Session id differs from its directory",
					"sessionId", req.SessionID, "dir", dir, "id", id)
			}
			count++
			s.reporter.Info("Migrated session: %s -> ID %d", req.SessionID, id)
		}
		return nil
	})
	if err != nil {
		return domain.NewSessionIDMap(), 0, err
	}

	s.reporter.Done("%d sessions migrated.", count)
	return ids, count, nil
}

// buildSession maps a request/state pair onto a session row.
// V1 only tracked the card total, which doubles as the processed count.
func buildSession(req *ports.SessionRequest, state *ports.SessionStateDocument, hasState bool, now int64) domain.Session {
	legacyState := domain.LegacyStateUnknown
	session := domain.Session{
		DeckID:   domain.SyntheticDeckID(req.DeckName),
		DeckName: req.DeckName,
		Progress: domain.SessionProgress{
			ProcessedCards: req.TotalCards,
			TotalCards:     req.TotalCards,
		},
		Prompt:    req.Prompt,
		UpdatedAt: now,
	}
	if hasState {
		legacyState = state.State
		session.ExitCode = state.ExitCode
		session.StateMessage = state.Message
	}
	session.State = domain.MapLegacySessionState(legacyState)
	return session
}
