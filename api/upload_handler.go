package api

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/services"
)

const (
	maxUploadFiles     = 20
	multipartMemory    = 32 << 20
	multipartOverheads = 1 << 20
)

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploader  *services.Uploader
}

func newUploadHandler(uploader *services.Uploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploader:  uploader,
	}
}

// upload stores images sent as multipart form data. A single "file" part is
// answered with one UploadResult; "files" parts are answered with a list in
// request order.
// @Summary Upload images
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} services.UploadResult
// @Failure 503 {object} ErrorResponse "Service Unavailable - Uploads are not configured"
// @Router /uploads [post]
func (h uploadHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.uploader == nil {
			h.responder.WriteError(w, errs.NewUploadDisabledError())
			return
		}

		limit := h.uploader.MaxBytes()*maxUploadFiles + multipartOverheads
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			h.logger.Warn().Err(err).Msg("unreadable multipart upload")
			h.responder.WriteError(w, errs.NewBadRequestError("expected multipart form data"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		single := r.MultipartForm.File["file"]
		many := r.MultipartForm.File["files"]
		headers := append(append([]*multipart.FileHeader{}, single...), many...)
		if len(headers) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		if len(headers) > maxUploadFiles {
			h.responder.WriteError(w, errs.NewBadRequestError("too many files"))
			return
		}

		files := make([]services.UploadFile, 0, len(headers))
		for _, fh := range headers {
			data, err := h.readPart(fh)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("failed to read uploaded file"))
				return
			}
			files = append(files, services.UploadFile{Name: fh.Filename, Data: data})
		}

		results := h.uploader.UploadAll(r.Context(), files)
		if len(single) == 1 && len(many) == 0 {
			h.responder.WriteJSON(w, results[0])
			return
		}
		h.responder.WriteJSON(w, map[string][]services.UploadResult{"results": results})
	}
}

// readPart reads at most one byte past the size cap so oversized files are
// rejected by validation rather than truncated.
func (h uploadHandler) readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, h.uploader.MaxBytes()+1))
}
