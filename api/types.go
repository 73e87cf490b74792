package api

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/rpupo63/site-sections-backend/models"
	"github.com/rpupo63/site-sections-backend/section"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler  healthHandler
	sectionHandler sectionHandler
	editorHandler  editorHandler
	pageHandler    pageHandler
	uploadHandler  uploadHandler
}

// SectionStore is the persistence the handlers need. *database.SectionRepo implements it.
type SectionStore interface {
	FindAll(ctx context.Context) ([]models.Section, error)
	FindByPage(ctx context.Context, pageSlug string, includeInactive bool) ([]models.Section, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Section, error)
	FindByIDForWrite(ctx context.Context, id uuid.UUID) (*models.Section, error)
	Add(ctx context.Context, s *models.Section) error
	Update(ctx context.Context, s *models.Section) error
	UpdateContent(ctx context.Context, id uuid.UUID, content string, version int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// SectionRequest is the body of create and update calls.
type SectionRequest struct {
	PageSlug        string           `json:"page_slug"`
	Position        int              `json:"position"`
	Title           string           `json:"title"`
	SectionType     string           `json:"section_type"`
	Content         string           `json:"content"`
	ContentVersion  *int             `json:"content_version,omitempty"`
	BackgroundType  string           `json:"background_type"`
	BackgroundColor string           `json:"background_color"`
	Gradient        *models.Gradient `json:"gradient,omitempty"`
	ImageURL        string           `json:"image_url"`
	OverlayOpacity  float64          `json:"overlay_opacity"`
	TextColor       string           `json:"text_color"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

// SectionResponse is a stored row with its content decoded. ContentError is
// set instead of Payload when the stored content cannot be read.
type SectionResponse struct {
	Section      models.Section  `json:"section"`
	Payload      section.Payload `json:"payload"`
	ContentError string          `json:"content_error,omitempty"`
}

type SectionCollection struct {
	Sections []SectionResponse `json:"sections"`
	Total    int               `json:"total"`
}

// ActionRequest applies one editor action to a stored section. EditingIndex is
// the record the admin form has open, -1 in add mode.
type ActionRequest struct {
	Action       string          `json:"action"`
	EditingIndex *int            `json:"editingIndex,omitempty"`
	Params       json.RawMessage `json:"params,omitempty"`
}

// ImageSelectRequest assigns a gallery image to the record at EditingIndex.
type ImageSelectRequest struct {
	URL          string `json:"url"`
	EditingIndex *int   `json:"editingIndex,omitempty"`
}

type ActionResponse struct {
	Content      string          `json:"content"`
	Version      int             `json:"content_version"`
	EditingIndex int             `json:"editingIndex"`
	Payload      section.Payload `json:"payload"`
}
