package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/rpupo63/site-sections-backend/editor"
	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/models"
	"github.com/rpupo63/site-sections-backend/render"
	"github.com/rpupo63/site-sections-backend/section"
)

const maxSectionBodyBytes = 2 << 20

type sectionHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     SectionStore
}

func newSectionHandler(store SectionStore) sectionHandler {
	logger := log.With().Str("handlerName", "sectionHandler").Logger()

	return sectionHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

func sectionIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "sectionID")
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing sectionID")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid sectionID")
	}
	return id, nil
}

// decodeBody reads a JSON body of at most limit bytes into v.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.NewMaxBodySizeExceededError(limit)
		}
		return errs.NewBadRequestError("failed to read request body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// loadPayload upgrades stored content to the current grammar and decodes it strictly.
func loadPayload(s models.Section) (section.Kind, section.Upgraded, section.Payload, error) {
	kind, err := s.Kind()
	if err != nil {
		return "", section.Upgraded{}, nil, err
	}
	up, err := section.Upgrade(kind, s.Content, s.ContentVersion)
	if err != nil {
		return kind, up, nil, err
	}
	payload, err := section.Decode(kind, up.Content)
	return kind, up, payload, err
}

func newSectionResponse(s models.Section) SectionResponse {
	resp := SectionResponse{Section: s}
	_, _, payload, err := loadPayload(s)
	if err != nil {
		resp.ContentError = err.Error()
		return resp
	}
	resp.Payload = payload
	return resp
}

// applyRequest validates req and copies it onto s. Content is upgraded to the
// current grammar and must decode.
func applyRequest(s *models.Section, req SectionRequest) error {
	req.PageSlug = strings.TrimSpace(req.PageSlug)
	if req.PageSlug == "" {
		return errs.NewMissingRequiredFieldError("page_slug")
	}
	kind, err := section.ParseKind(req.SectionType)
	if err != nil {
		return err
	}

	switch req.BackgroundType {
	case "":
		req.BackgroundType = render.BackgroundSolid
	case render.BackgroundSolid, render.BackgroundGradient, render.BackgroundImage:
	default:
		return errs.NewInvalidFieldError("background_type", fmt.Sprintf("unknown background type %q", req.BackgroundType))
	}
	if req.OverlayOpacity < 0 || req.OverlayOpacity > 100 {
		return errs.NewInvalidFieldError("overlay_opacity", "must be between 0 and 100")
	}

	version := section.CurrentVersion
	if req.ContentVersion != nil {
		version = *req.ContentVersion
	}
	up, err := section.Upgrade(kind, req.Content, version)
	if err != nil {
		return err
	}
	if _, err := section.Decode(kind, up.Content); err != nil {
		return err
	}

	s.PageSlug = req.PageSlug
	s.Position = req.Position
	s.Title = strings.TrimSpace(req.Title)
	s.SectionType = string(kind)
	s.Content = up.Content
	s.ContentVersion = up.Version
	s.BackgroundType = req.BackgroundType
	s.BackgroundColor = strings.TrimSpace(req.BackgroundColor)
	s.ImageURL = strings.TrimSpace(req.ImageURL)
	s.OverlayOpacity = req.OverlayOpacity
	s.TextColor = strings.TrimSpace(req.TextColor)
	s.Gradient = nil
	if req.Gradient != nil {
		raw, err := json.Marshal(req.Gradient)
		if err != nil {
			return errs.NewInvalidFieldError("gradient", err.Error())
		}
		s.Gradient = datatypes.JSON(raw)
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	return nil
}

// getSections lists sections, optionally filtered by page. Inactive sections
// are only listed when includeInactive is set, which the admin route does.
// @Summary List sections
// @Tags Sections
// @Produce json
// @Param page query string false "Page slug"
// @Success 200 {object} SectionCollection
// @Failure 500 {object} ErrorResponse
// @Router /sections [get]
// @Router /admin/sections [get]
func (h sectionHandler) getSections(includeInactive bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			rows []models.Section
			err  error
		)
		if page := r.URL.Query().Get("page"); page != "" {
			rows, err = h.store.FindByPage(r.Context(), page, includeInactive)
		} else {
			rows, err = h.store.FindAll(r.Context())
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find sections", "sections", err))
			return
		}

		out := SectionCollection{Sections: make([]SectionResponse, 0, len(rows))}
		for _, row := range rows {
			if !row.IsActive && !includeInactive {
				continue
			}
			out.Sections = append(out.Sections, newSectionResponse(row))
		}
		out.Total = len(out.Sections)
		h.responder.WriteJSON(w, out)
	}
}

// getSection returns one section with its decoded content
// @Summary Get section
// @Tags Sections
// @Produce json
// @Param sectionID path string true "Section ID" format(uuid)
// @Success 200 {object} SectionResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid sectionID"
// @Failure 404 {object} ErrorResponse "Not Found - Section not found"
// @Router /section/{sectionID} [get]
// @Router /admin/section/{sectionID} [get]
func (h sectionHandler) getSection(includeInactive bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sectionIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		row, err := h.store.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find section", "section", err))
			return
		}
		if !row.IsActive && !includeInactive {
			h.responder.WriteError(w, errs.NewNotFound("section"))
			return
		}
		h.responder.WriteJSON(w, newSectionResponse(*row))
	}
}

// createSection adds a section to a page
// @Summary Create section
// @Tags Sections
// @Accept json
// @Produce json
// @Param section body SectionRequest true "Section data"
// @Success 201 {object} SectionResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid section data"
// @Failure 422 {object} ErrorResponse "Unprocessable - Content does not decode"
// @Router /section [post]
func (h sectionHandler) createSection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SectionRequest
		if err := decodeBody(w, r, maxSectionBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		row := models.Section{IsActive: true}
		if err := applyRequest(&row, req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Add(r.Context(), &row); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create section", "section", err))
			return
		}

		h.logger.Info().Str("sectionID", row.ID.String()).Str("sectionType", row.SectionType).Msg("section created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, newSectionResponse(row))
	}
}

// updateSection replaces a section
// @Summary Update section
// @Tags Sections
// @Accept json
// @Produce json
// @Param sectionID path string true "Section ID" format(uuid)
// @Param section body SectionRequest true "Section data"
// @Success 200 {object} SectionResponse
// @Failure 404 {object} ErrorResponse "Not Found - Section not found"
// @Router /section/{sectionID} [put]
func (h sectionHandler) updateSection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sectionIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		row, err := h.store.FindByIDForWrite(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find section", "section", err))
			return
		}

		var req SectionRequest
		if err := decodeBody(w, r, maxSectionBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := applyRequest(row, req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Update(r.Context(), row); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update section", "section", err))
			return
		}
		h.responder.WriteJSON(w, newSectionResponse(*row))
	}
}

// deleteSection deletes a section by ID
// @Summary Delete section
// @Tags Sections
// @Param sectionID path string true "Section ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Router /section/{sectionID} [delete]
func (h sectionHandler) deleteSection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sectionIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete section", "section", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "section deleted successfully",
		})
	}
}

// getStats summarizes a testimonials section
// @Summary Testimonial statistics
// @Tags Sections
// @Produce json
// @Param sectionID path string true "Section ID" format(uuid)
// @Success 200 {object} editor.Stats
// @Router /section/{sectionID}/stats [get]
func (h sectionHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sectionIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		row, err := h.store.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find section", "section", err))
			return
		}

		_, _, payload, err := loadPayload(*row)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		items, ok := payload.(section.Testimonials)
		if !ok {
			h.responder.WriteError(w, errs.NewUnsupportedSectionTypeError(row.SectionType))
			return
		}
		h.responder.WriteJSON(w, editor.TestimonialStats(items))
	}
}

// exportSection downloads a testimonials or projects list as JSON
// @Summary Export section records
// @Tags Sections
// @Produce json
// @Param sectionID path string true "Section ID" format(uuid)
// @Router /section/{sectionID}/export [get]
func (h sectionHandler) exportSection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sectionIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		row, err := h.store.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find section", "section", err))
			return
		}

		kind, _, payload, err := loadPayload(*row)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		data, err := editor.Export(payload)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.json"`, kind, row.ID))
		if _, err := w.Write(data); err != nil {
			h.logger.Error().Err(err).Msg("error writing export")
		}
	}
}
