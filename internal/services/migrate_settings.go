package services

import (
	"context"

	"github.com/ankideku/deku-migrate/internal/domain"
	"github.com/ankideku/deku-migrate/internal/ports"
)

// MigrateSettings upserts every key of the settings document.
// It is a no-op returning 0 when there is no settings document.
func (s *MigrationService) MigrateSettings(ctx context.Context) (int, error) {
	s.reporter.Stage(1, StageCount, "Migrating settings...")

	entries, ok := s.source.Settings()
	if !ok {
		s.reporter.Info("No settings.json found, skipping.")
		return 0, nil
	}

	now := s.nowMillis()
	count := 0
	err := s.target.Transaction(ctx, func(w ports.MigrationWriter) error {
		for _, entry := range entries {
			setting := domain.Setting{Key: entry.Key, UpdatedAt: now, Value: entry.Value}
			if err := w.UpsertSetting(ctx, setting); err != nil {
				return err
			}
			count++
			s.reporter.Info("Migrated setting: %s", entry.Key)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.reporter.Done("%d settings migrated.", count)
	return count, nil
}
