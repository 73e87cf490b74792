package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlRecorder keeps the statements a dry-run session would have sent.
type sqlRecorder struct {
	logger.Interface
	statements []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.statements = append(r.statements, sql)
}

func (r *sqlRecorder) last() string {
	if len(r.statements) == 0 {
		return ""
	}
	return r.statements[len(r.statements)-1]
}

func newDryRunRepo(t *testing.T) (*SectionRepo, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{Interface: logger.Discard}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=test dbname=test sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, Logger: rec})
	require.NoError(t, err)
	return New(db).SectionRepo(), rec
}

func TestFindByPage(t *testing.T) {
	repo, rec := newDryRunRepo(t)

	_, err := repo.FindByPage(context.Background(), "home", false)
	require.NoError(t, err)
	assert.Contains(t, rec.last(), `FROM "sections" WHERE page_slug = 'home' AND is_active = true ORDER BY position, created_at`)

	_, err = repo.FindByPage(context.Background(), "home", true)
	require.NoError(t, err)
	assert.NotContains(t, rec.last(), "is_active")
}

func TestUpdateContentTouchesOnlyContentColumns(t *testing.T) {
	repo, rec := newDryRunRepo(t)
	id := uuid.MustParse("7b0c4c52-3c2a-4f7e-9d7e-0d6f5c1b2a31")

	err := repo.UpdateContent(context.Background(), id, "Pro|29|/month||0|Support", 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "a dry run affects no rows")

	sql := rec.last()
	assert.Contains(t, sql, `UPDATE "sections" SET`)
	assert.Contains(t, sql, `"content"='Pro|29|/month||0|Support'`)
	assert.Contains(t, sql, `"content_version"=2`)
	assert.NotContains(t, sql, "is_active")
	assert.Contains(t, sql, "WHERE id = '7b0c4c52-3c2a-4f7e-9d7e-0d6f5c1b2a31'")
}

func TestDeleteMissingSection(t *testing.T) {
	repo, rec := newDryRunRepo(t)
	id := uuid.New()

	err := repo.Delete(context.Background(), id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Contains(t, rec.last(), `DELETE FROM "sections" WHERE id = '`+id.String()+`'`)
}
