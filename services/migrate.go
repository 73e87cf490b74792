package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/site-sections-backend/models"
	"github.com/rpupo63/site-sections-backend/section"
)

const (
	migrationBatchSize = 100
	migrationWorkers   = 8
)

// ContentStore is what the content migration needs from the section repository.
type ContentStore interface {
	FindStale(ctx context.Context, version, batchSize int, fn func([]models.Section) error) error
	UpdateContent(ctx context.Context, id uuid.UUID, content string, version int) error
}

type MigrationReport struct {
	Scanned  int64 `json:"scanned"`
	Upgraded int64 `json:"upgraded"`
	Skipped  int64 `json:"skipped"`
}

// MigrateContent rewrites every section stored in an older content grammar.
// Rows that cannot be read are left untouched and counted as skipped, so the
// job can be rerun after they are fixed by hand.
func MigrateContent(ctx context.Context, store ContentStore) (MigrationReport, error) {
	var scanned, upgraded, skipped atomic.Int64

	err := store.FindStale(ctx, section.CurrentVersion, migrationBatchSize, func(batch []models.Section) error {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(migrationWorkers)

		for _, s := range batch {
			s := s
			g.Go(func() error {
				scanned.Add(1)
				logger := log.With().Str("sectionID", s.ID.String()).Str("sectionType", s.SectionType).Logger()

				kind, err := s.Kind()
				if err != nil {
					logger.Warn().Err(err).Msg("skipping section of unknown type")
					skipped.Add(1)
					return nil
				}

				up, err := section.Upgrade(kind, s.Content, s.ContentVersion)
				if err != nil {
					logger.Warn().Err(err).Msg("skipping unreadable section content")
					skipped.Add(1)
					return nil
				}

				if err := store.UpdateContent(ctx, s.ID, up.Content, up.Version); err != nil {
					return fmt.Errorf("saving section %s: %w", s.ID, err)
				}
				upgraded.Add(1)
				return nil
			})
		}
		return g.Wait()
	})

	report := MigrationReport{Scanned: scanned.Load(), Upgraded: upgraded.Load(), Skipped: skipped.Load()}
	if err != nil {
		return report, err
	}
	log.Info().Interface("report", report).Msg("content migration done")
	return report, nil
}
