package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/site-content-backend/errs"
	"github.com/rpupo63/site-content-backend/store"
)

type cvHandler struct {
	responder  Responder
	logger     zerolog.Logger
	cvStore    *store.CVStore
	mediaStore *store.MediaStore
}

func newCVHandler(cvStore *store.CVStore, mediaStore *store.MediaStore) cvHandler {
	logger := log.With().Str("handlerName", "cvHandler").Logger()

	return cvHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		cvStore:    cvStore,
		mediaStore: mediaStore,
	}
}

// downloadCV streams the current CV document as an attachment.
func (h cvHandler) downloadCV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.cvStore.Get()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", doc.FileType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalName))
		http.ServeFile(w, r, h.mediaStore.FilePath(doc.Filename))
	}
}

// getCVInfo returns the CV metadata plus its public path.
func (h cvHandler) getCVInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.cvStore.Get()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"cv":  doc,
			"url": store.PublicPath(doc.Filename),
		})
	}
}

// setCV replaces the current CV with the uploaded multipart "cv" file.
func (h cvHandler) setCV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart form", err))
			return
		}

		file, header, err := r.FormFile("cv")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("cv"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			h.responder.WriteError(w, errs.NewStoreIOError("read uploaded file", err))
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		doc, err := h.cvStore.Set(data, header.Filename, contentType)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"cv":  doc,
			"url": store.PublicPath(doc.Filename),
		})
	}
}

// clearCV removes the current CV. Clearing an already-empty slot is a 404.
func (h cvHandler) clearCV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.cvStore.Clear(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "cv deleted successfully",
		})
	}
}
