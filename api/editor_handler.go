package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/site-sections-backend/editor"
	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/section"
)

const maxActionBodyBytes = 4 << 20

type editorHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     SectionStore
	editors   *editor.Registry
	assets    section.AssetNormalizer
}

func newEditorHandler(store SectionStore, editors *editor.Registry, assets section.AssetNormalizer) editorHandler {
	logger := log.With().Str("handlerName", "editorHandler").Logger()

	return editorHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		editors:   editors,
		assets:    assets,
	}
}

// applyAction runs one editor action against the stored content of a section
// and saves the result. Validation failures leave the row untouched.
// @Summary Apply editor action
// @Tags Editor
// @Accept json
// @Produce json
// @Param sectionID path string true "Section ID" format(uuid)
// @Param action body ActionRequest true "Action"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown action or invalid field"
// @Failure 409 {object} ErrorResponse "Conflict - No record is being edited"
// @Failure 422 {object} ErrorResponse "Unprocessable - Stored content does not decode"
// @Failure 428 {object} ErrorResponse "Precondition Required - Confirmation required"
// @Router /section/{sectionID}/actions [post]
func (h editorHandler) applyAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sectionIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req ActionRequest
		if err := decodeBody(w, r, maxActionBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		req.Action = strings.TrimSpace(req.Action)
		if req.Action == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("action"))
			return
		}

		h.withSession(w, r, id, req.Action, req.EditingIndex, func(ed editor.Editor, session *editor.Session) error {
			action, err := ed.DecodeAction(req.Action, req.Params)
			if err != nil {
				return err
			}
			_, err = session.Dispatch(action)
			return err
		})
	}
}

// selectImage hands an image picked from the gallery to the record open in
// the section's editor.
// @Summary Select image for the edited record
// @Tags Editor
// @Accept json
// @Produce json
// @Param sectionID path string true "Section ID" format(uuid)
// @Param image body ImageSelectRequest true "Picked image"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Image has not been uploaded"
// @Failure 409 {object} ErrorResponse "Conflict - No record is being edited"
// @Router /section/{sectionID}/image [post]
func (h editorHandler) selectImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sectionIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req ImageSelectRequest
		if err := decodeBody(w, r, maxSectionBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if strings.TrimSpace(req.URL) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("url"))
			return
		}

		h.withSession(w, r, id, "selectImage", req.EditingIndex, func(_ editor.Editor, session *editor.Session) error {
			picker := &editor.ImagePicker{Assets: h.assets}
			owner := id.String()
			picker.Claim(owner, session.ImageTarget())
			defer picker.Release(owner)
			return picker.Select(req.URL)
		})
	}
}

// withSession opens an editor session on the stored content of section id,
// runs apply and persists the field when apply succeeds.
func (h editorHandler) withSession(w http.ResponseWriter, r *http.Request, id uuid.UUID, name string, editingIndex *int, apply func(editor.Editor, *editor.Session) error) {
	row, err := h.store.FindByIDForWrite(r.Context(), id)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find section", "section", err))
		return
	}

	kind, err := row.Kind()
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}
	ed, ok := h.editors.For(kind)
	if !ok {
		h.responder.WriteError(w, errs.NewUnsupportedSectionTypeError(string(kind)))
		return
	}

	field := editor.NewField(row.Content)
	session, err := editor.NewSession(ed, field, row.ContentVersion)
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}
	defer session.Close()
	if editingIndex != nil {
		session.SetEditingIndex(*editingIndex)
	}

	if err := apply(ed, session); err != nil {
		h.responder.WriteError(w, err)
		return
	}

	content, version := session.Content(), session.Version()
	if err := h.store.UpdateContent(r.Context(), id, content, version); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("update section content", "section", err))
		return
	}

	logger := h.logger.With().Str("sectionID", id.String()).Str("action", name).Logger()
	if subject, err := ctxGetAdminSubject(r.Context()); err == nil {
		logger = logger.With().Str("admin", subject).Logger()
	}
	logger.Debug().Msg("editor action applied")

	state := session.State()
	h.responder.WriteJSON(w, ActionResponse{
		Content:      content,
		Version:      version,
		EditingIndex: state.EditingIndex,
		Payload:      state.Payload,
	})
}
