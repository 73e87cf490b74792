package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/rpupo63/site-sections-backend/section"
)

// Section is one content block of a page. Content is encoded in the grammar of
// SectionType; ContentVersion records which revision of that grammar it uses.
type Section struct {
	ID              uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	PageSlug        string         `json:"page_slug" db:"page_slug" gorm:"type:text;not null;index:idx_sections_page_position,priority:1"`
	Position        int            `json:"position" db:"position" gorm:"not null;default:0;index:idx_sections_page_position,priority:2"`
	Title           string         `json:"title" db:"title" gorm:"type:text;not null;default:''"`
	SectionType     string         `json:"section_type" db:"section_type" gorm:"type:text;not null"`
	Content         string         `json:"content" db:"content" gorm:"type:text;not null;default:''"`
	ContentVersion  int            `json:"content_version" db:"content_version" gorm:"not null;default:0"`
	BackgroundType  string         `json:"background_type" db:"background_type" gorm:"type:text;not null;default:'solid'"`
	BackgroundColor string         `json:"background_color" db:"background_color" gorm:"type:text"`
	Gradient        datatypes.JSON `json:"gradient,omitempty" db:"gradient" gorm:"type:jsonb"`
	ImageURL        string         `json:"image_url" db:"image_url" gorm:"type:text"`
	OverlayOpacity  float64        `json:"overlay_opacity" db:"overlay_opacity" gorm:"not null;default:0"`
	TextColor       string         `json:"text_color" db:"text_color" gorm:"type:text"`
	IsActive        bool           `json:"is_active" db:"is_active" gorm:"not null"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

// Gradient is stored in the gradient jsonb column.
type Gradient struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Direction string `json:"direction"`
}

func (s Section) Kind() (section.Kind, error) {
	return section.ParseKind(s.SectionType)
}
