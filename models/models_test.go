package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"github.com/rpupo63/site-sections-backend/section"
)

func TestSectionSchema(t *testing.T) {
	s, err := schema.Parse(&Section{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	assert.Equal(t, "sections", s.Table)
	assert.ElementsMatch(t, []string{
		"id", "page_slug", "position", "title", "section_type", "content", "content_version",
		"background_type", "background_color", "gradient", "image_url", "overlay_opacity",
		"text_color", "is_active", "created_at", "updated_at",
	}, modelColumns(s))
}

func TestFindColumnMismatches(t *testing.T) {
	got := findColumnMismatches(
		[]string{"id", "title", "legacy_css", "content", "animation"},
		[]string{"id", "title", "content"},
	)
	assert.Equal(t, []string{"animation", "legacy_css"}, got)
	assert.Empty(t, findColumnMismatches([]string{"id"}, []string{"id", "title"}))
}

func TestSectionKind(t *testing.T) {
	kind, err := Section{SectionType: "text_image"}.Kind()
	require.NoError(t, err)
	assert.Equal(t, section.KindTextImage, kind)

	_, err = Section{SectionType: "marquee"}.Kind()
	assert.Error(t, err)
}
