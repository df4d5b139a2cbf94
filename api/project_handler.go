package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/site-content-backend/errs"
	"github.com/rpupo63/site-content-backend/models"
	"github.com/rpupo63/site-content-backend/store"
)

// maxFormMemory bounds how much of a multipart body is held in memory.
const maxFormMemory = 32 << 20

type projectHandler struct {
	responder    Responder
	logger       zerolog.Logger
	projectStore *store.ProjectStore
}

func newProjectHandler(projectStore *store.ProjectStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		projectStore: projectStore,
	}
}

// listProjects returns the full project collection in insertion order.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectStore.List()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// createProject creates a new project from the admin form fields.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := projectFromForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.projectStore.Create(fields)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, created)
	}
}

// updateProject replaces an existing project wholesale. The id comes from
// the form body, matching the admin form contract.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := projectFromForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		idStr := formValue(r, "id")
		if idStr == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("id"))
			return
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("id", "must be an integer"))
			return
		}

		updated, err := h.projectStore.Update(id, fields)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteProject removes a project and its now-orphaned images.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := chi.URLParam(r, "projectID")
		if idStr == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.projectStore.Delete(id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// projectFromForm decodes the admin form contract: features newline-split,
// technologies comma-split, images a JSON array of public paths.
func projectFromForm(r *http.Request) (models.Project, error) {
	if err := parseForm(r); err != nil {
		return models.Project{}, errs.NewMalformedPayloadError("form", err)
	}

	images := []string{}
	if raw := formValue(r, "images"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &images); err != nil {
			return models.Project{}, errs.NewInvalidFieldError("images", "must be a JSON array of paths")
		}
	}

	// Absent list fields stay nil so the store can tell "missing" from
	// "provided but empty".
	var features, technologies []string
	if _, ok := r.Form["features"]; ok {
		features = splitLines(formValue(r, "features"))
	}
	if _, ok := r.Form["technologies"]; ok {
		technologies = splitCommas(formValue(r, "technologies"))
	}

	return models.Project{
		Title:           formValue(r, "title"),
		Description:     formValue(r, "description"),
		LongDescription: formValue(r, "longDescription"),
		Features:        features,
		Images:          images,
		Technologies:    technologies,
		GithubRepo:      formValue(r, "githubRepo"),
		LiveDemo:        formValue(r, "liveDemo"),
		InProgress:      formValue(r, "inProgress") == "true",
	}, nil
}

// parseForm accepts either multipart or url-encoded form bodies.
func parseForm(r *http.Request) error {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

func formValue(r *http.Request, key string) string {
	return r.FormValue(key)
}

func splitLines(s string) []string {
	lines := []string{}
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func splitCommas(s string) []string {
	values := []string{}
	for _, value := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
