package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/models"
	"github.com/rpupo63/site-sections-backend/render"
)

type pageHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     SectionStore
	renderer  *render.Renderer
}

func newPageHandler(store SectionStore, renderer *render.Renderer) pageHandler {
	logger := log.With().Str("handlerName", "pageHandler").Logger()

	return pageHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		renderer:  renderer,
	}
}

// pageTitle is the title of the first titled section, or the slug in title case.
func pageTitle(slug string, sections []models.Section) string {
	for _, s := range sections {
		if t := strings.TrimSpace(s.Title); t != "" {
			return t
		}
	}
	return cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
}

// renderPage writes the sections of a page as one HTML document
// @Summary Render page
// @Tags Pages
// @Produce html
// @Param pageSlug path string true "Page slug"
// @Success 200 {string} string "HTML document"
// @Failure 404 {object} ErrorResponse "Not Found - Page has no active sections"
// @Router /pages/{pageSlug} [get]
func (h pageHandler) renderPage(preview bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "pageSlug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing pageSlug"))
			return
		}

		sections, err := h.store.FindByPage(r.Context(), slug, preview)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find sections", "page", err))
			return
		}
		if len(sections) == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError("page not found"))
			return
		}

		var buf bytes.Buffer
		if err := h.renderer.RenderPage(&buf, pageTitle(slug, sections), sections, preview); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("rendering page", err))
			return
		}
		h.responder.WriteHTML(w, buf.Bytes())
	}
}

// previewSection renders one stored section as an HTML fragment in preview mode
// @Summary Preview section
// @Tags Pages
// @Produce html
// @Param sectionID path string true "Section ID" format(uuid)
// @Router /section/{sectionID}/preview [get]
func (h pageHandler) previewSection() http.HandlerFunc {
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
		h.writeFragment(w, *row)
	}
}

// previewDraft renders an unsaved section so the admin can see it before saving
// @Summary Preview draft section
// @Tags Pages
// @Accept json
// @Produce html
// @Param section body SectionRequest true "Section data"
// @Router /section/preview [post]
func (h pageHandler) previewDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SectionRequest
		if err := decodeBody(w, r, maxSectionBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if strings.TrimSpace(req.PageSlug) == "" {
			req.PageSlug = "preview"
		}

		row := models.Section{IsActive: true}
		if err := applyRequest(&row, req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.writeFragment(w, row)
	}
}

func (h pageHandler) writeFragment(w http.ResponseWriter, row models.Section) {
	html, err := h.renderer.NewPage(true).Section(row)
	if err != nil {
		h.responder.WriteError(w, errs.NewInternalErrorWithCause("rendering section", err))
		return
	}
	h.responder.WriteHTML(w, []byte(html))
}
