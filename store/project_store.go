package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/site-content-backend/errs"
	"github.com/rpupo63/site-content-backend/models"
)

// ProjectStore owns the project collection, persisted as a single ordered
// JSON array. Every operation runs its whole read-modify-write cycle under
// one mutex, so concurrent requests can never interleave against the
// collection or lose each other's writes. The collection file is the sole
// source of truth for which images are in use.
type ProjectStore struct {
	mu     sync.Mutex
	path   string
	media  *MediaStore
	ids    idAllocator
	logger zerolog.Logger
}

func NewProjectStore(path string, media *MediaStore) *ProjectStore {
	logger := log.With().Str("storeName", "projectStore").Logger()
	return &ProjectStore{path: path, media: media, logger: logger}
}

// List returns the full collection in insertion order. An unreadable or
// missing collection file reads as an empty collection (first-run semantics).
func (s *ProjectStore) List() ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(), nil
}

// Create validates the required fields, allocates a fresh id, appends the
// project and persists the whole collection. On a persistence failure
// nothing is committed.
func (s *ProjectStore) Create(fields models.Project) (models.Project, error) {
	if err := validateProject(fields); err != nil {
		return models.Project{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.load()
	fields.ID = s.ids.next(projectIDs(projects))
	projects = append(projects, fields)

	if err := s.save(projects); err != nil {
		return models.Project{}, err
	}

	s.logger.Info().Int64("projectID", fields.ID).Str("title", fields.Title).Msg("Created project")
	return fields, nil
}

// Update replaces the record's fields wholesale. The id never changes.
func (s *ProjectStore) Update(id int64, fields models.Project) (models.Project, error) {
	if err := validateProject(fields); err != nil {
		return models.Project{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.load()
	index := indexOf(projects, id)
	if index < 0 {
		return models.Project{}, errs.NewNotFoundError("project")
	}

	fields.ID = id
	projects[index] = fields

	if err := s.save(projects); err != nil {
		return models.Project{}, err
	}

	s.logger.Info().Int64("projectID", id).Msg("Updated project")
	return fields, nil
}

// Delete removes the record, persists the reduced collection, and then makes
// a best-effort pass deleting every blob the removed record referenced.
// Blob-deletion failures are logged as partial failures and do not roll back
// the record removal.
func (s *ProjectStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.load()
	index := indexOf(projects, id)
	if index < 0 {
		return errs.NewNotFoundError("project")
	}

	removed := projects[index]
	projects = append(projects[:index], projects[index+1:]...)

	if err := s.save(projects); err != nil {
		return err
	}

	s.logger.Info().Int64("projectID", id).Msg("Deleted project")
	s.cleanupImages(id, removed.Images)
	return nil
}

// cleanupImages deletes the blobs behind a removed record's image paths.
// A blob that is already gone counts as success; the invariant only cares
// that the blob is absent afterward.
func (s *ProjectStore) cleanupImages(projectID int64, images []string) {
	for _, imagePath := range images {
		storageName := strings.TrimPrefix(imagePath, PublicPrefix)
		if err := s.media.Delete(storageName); err != nil {
			if errs.IsNotFound(err) {
				continue
			}
			partial := errs.NewPartialFailureError("delete blob", storageName, err)
			s.logger.Error().
				Err(partial).
				Int64("projectID", projectID).
				Str("image", imagePath).
				Msg("Orphaned blob left behind after project delete")
		}
	}
}

// load reads the collection file. Any read or parse failure yields an empty
// collection rather than an error.
func (s *ProjectStore) load() []models.Project {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return []models.Project{}
	}

	var projects []models.Project
	if err := json.Unmarshal(content, &projects); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Unparsable collection file, treating as empty")
		return []models.Project{}
	}
	return projects
}

// save persists the whole collection all-or-nothing: the new content is
// written to a temp file in the same directory and renamed over the old one,
// so a failed write can never leave the file unparsable.
func (s *ProjectStore) save(projects []models.Project) error {
	content, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return errs.NewStoreIOError("encode project collection", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.NewStoreIOError("create data directory", err)
	}

	tmp, err := os.CreateTemp(dir, "projects-*.json")
	if err != nil {
		return errs.NewStoreIOError("create temp collection file", err)
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errs.NewStoreIOError("write collection file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errs.NewStoreIOError("close collection file", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return errs.NewStoreIOError("replace collection file", err)
	}
	return nil
}

func validateProject(p models.Project) error {
	if strings.TrimSpace(p.Title) == "" {
		return errs.NewValidationError("title", "required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return errs.NewValidationError("description", "required")
	}
	if strings.TrimSpace(p.GithubRepo) == "" {
		return errs.NewValidationError("githubRepo", "required")
	}
	if p.Features == nil {
		return errs.NewValidationError("features", "required")
	}
	if p.Technologies == nil {
		return errs.NewValidationError("technologies", "required")
	}
	return nil
}

func indexOf(projects []models.Project, id int64) int {
	for i, p := range projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func projectIDs(projects []models.Project) []int64 {
	ids := make([]int64, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	return ids
}
