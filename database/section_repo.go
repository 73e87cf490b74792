package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/rpupo63/site-sections-backend/models"
)

type SectionRepo struct {
	db *gorm.DB
}

func NewSectionRepo(db *gorm.DB) *SectionRepo {
	return &SectionRepo{db}
}

// FindAll returns every section grouped by page and ordered by position.
func (r *SectionRepo) FindAll(ctx context.Context) ([]models.Section, error) {
	var sections []models.Section
	err := r.db.WithContext(ctx).Order("page_slug, position, created_at").Find(&sections).Error
	return sections, err
}

// FindByPage returns the sections of a page ordered by position. Inactive
// sections are included only when includeInactive is set.
func (r *SectionRepo) FindByPage(ctx context.Context, pageSlug string, includeInactive bool) ([]models.Section, error) {
	var sections []models.Section
	q := r.db.WithContext(ctx).Where("page_slug = ?", pageSlug)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("position, created_at").Find(&sections).Error
	return sections, err
}

// FindByID returns a section by its ID
func (r *SectionRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	var s models.Section
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByIDForWrite reads from the primary so a read-modify-write never starts
// from a lagging replica.
func (r *SectionRepo) FindByIDForWrite(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	var s models.Section
	if err := r.db.WithContext(ctx).Clauses(dbresolver.Write).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Add inserts a new section into the database
func (r *SectionRepo) Add(ctx context.Context, s *models.Section) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// Update updates an existing section in the database
func (r *SectionRepo) Update(ctx context.Context, s *models.Section) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// UpdateContent replaces only the content columns of a section.
func (r *SectionRepo) UpdateContent(ctx context.Context, id uuid.UUID, content string, version int) error {
	res := r.db.WithContext(ctx).
		Model(&models.Section{}).
		Where("id = ?", id).
		Updates(map[string]any{"content": content, "content_version": version})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindStale calls fn with batches of sections whose content is older than version.
func (r *SectionRepo) FindStale(ctx context.Context, version, batchSize int, fn func([]models.Section) error) error {
	var batch []models.Section
	return r.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("content_version < ?", version).
		FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
			return fn(batch)
		}).Error
}

// Delete removes a section from the database by id
func (r *SectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Section{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
