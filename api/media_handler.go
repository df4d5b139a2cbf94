package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/site-content-backend/errs"
	"github.com/rpupo63/site-content-backend/store"
)

type mediaHandler struct {
	responder  Responder
	logger     zerolog.Logger
	mediaStore *store.MediaStore
}

func newMediaHandler(mediaStore *store.MediaStore) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	return mediaHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		mediaStore: mediaStore,
	}
}

// uploadImage stores a multipart "image" file and returns its public URL.
func (h mediaHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart form", err))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("image"))
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

		storageName, err := h.mediaStore.Put(data, header.Filename, contentType, store.AllowImages)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"url": store.PublicPath(storageName),
		})
	}
}

// listMedia enumerates the media library.
func (h mediaHandler) listMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assets, err := h.mediaStore.List()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, assets)
	}
}

// deleteMedia removes a blob by storage name or uuid prefix.
func (h mediaHandler) deleteMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaID := chi.URLParam(r, "mediaID")
		if mediaID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing mediaID"))
			return
		}

		if err := h.mediaStore.Delete(mediaID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "file deleted successfully",
		})
	}
}

// serveFiles exposes the public read path for stored blobs.
func (h mediaHandler) serveFiles() http.Handler {
	return http.StripPrefix(store.PublicPrefix, http.FileServer(http.Dir(h.mediaStore.Dir())))
}
