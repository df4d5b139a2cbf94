package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/site-content-backend/errs"
	"github.com/rpupo63/site-content-backend/models"
)

// DefaultCVMaxBytes is the size ceiling for the CV document.
const DefaultCVMaxBytes = 5 << 20

// CVStore maintains at most one current CV document: one blob in the media
// store plus a JSON metadata sidecar. Replacement is new-then-old: the new
// blob and metadata are committed before the previous blob is removed, so a
// valid CV stays visible mid-operation at the cost of transient duplication.
// Metadata is cached in memory and invalidated on every Set/Clear.
type CVStore struct {
	mu       sync.Mutex
	metaPath string
	media    *MediaStore
	maxBytes int64

	cached *models.CVDocument
	loaded bool

	logger zerolog.Logger
}

func NewCVStore(metaPath string, media *MediaStore, maxBytes int64) *CVStore {
	if maxBytes <= 0 {
		maxBytes = DefaultCVMaxBytes
	}
	logger := log.With().Str("storeName", "cvStore").Logger()
	return &CVStore{metaPath: metaPath, media: media, maxBytes: maxBytes, logger: logger}
}

// Get returns the current CV metadata, or a not-found error if none is set.
func (s *CVStore) Get() (models.CVDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.current()
	if doc == nil {
		return models.CVDocument{}, errs.NewNotFoundError("cv")
	}
	return *doc, nil
}

// Set stores a new CV document, replacing any previous one. The previous
// blob is removed only after the new blob and metadata are both durable.
func (s *CVStore) Set(data []byte, originalName, contentType string) (models.CVDocument, error) {
	if int64(len(data)) > s.maxBytes {
		return models.CVDocument{}, errs.NewFileTooLargeError(int64(len(data)), s.maxBytes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.current()

	storageName, err := s.media.Put(data, originalName, contentType, AllowDocuments)
	if err != nil {
		return models.CVDocument{}, err
	}

	doc := models.CVDocument{
		Filename:     storageName,
		OriginalName: originalName,
		UploadDate:   time.Now().UTC(),
		FileType:     contentType,
	}

	if err := s.saveMeta(doc); err != nil {
		// The new blob is unreferenced; remove it so the failed set leaves
		// no trace.
		if delErr := s.media.Delete(storageName); delErr != nil && !errs.IsNotFound(delErr) {
			s.logger.Error().Err(delErr).Str("storageName", storageName).Msg("Orphaned CV blob after failed metadata write")
		}
		return models.CVDocument{}, err
	}

	s.cached = &doc
	s.loaded = true

	if previous != nil && previous.Filename != doc.Filename {
		if err := s.media.Delete(previous.Filename); err != nil && !errs.IsNotFound(err) {
			partial := errs.NewPartialFailureError("delete blob", previous.Filename, err)
			s.logger.Error().Err(partial).Msg("Previous CV blob left behind after replacement")
		}
	}

	s.logger.Info().Str("filename", doc.Filename).Str("originalName", originalName).Msg("Stored CV")
	return doc, nil
}

// Clear removes the current CV blob and metadata. Clearing an empty slot is
// an error so callers can detect redundant deletes.
func (s *CVStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.current()
	if doc == nil {
		return errs.NewNotFoundError("cv")
	}

	if err := os.Remove(s.metaPath); err != nil && !os.IsNotExist(err) {
		return errs.NewStoreIOError("remove cv metadata", err)
	}
	s.cached = nil
	s.loaded = true

	if err := s.media.Delete(doc.Filename); err != nil && !errs.IsNotFound(err) {
		partial := errs.NewPartialFailureError("delete blob", doc.Filename, err)
		s.logger.Error().Err(partial).Msg("CV blob left behind after clear")
	}

	s.logger.Info().Str("filename", doc.Filename).Msg("Cleared CV")
	return nil
}

// current returns the cached metadata, loading it from disk on first use.
// Callers must hold the lock. A nil return means the slot is empty.
func (s *CVStore) current() *models.CVDocument {
	if s.loaded {
		return s.cached
	}

	s.loaded = true
	content, err := os.ReadFile(s.metaPath)
	if err != nil {
		return nil
	}

	var doc models.CVDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		s.logger.Warn().Err(err).Str("path", s.metaPath).Msg("Unparsable cv metadata, treating as empty")
		return nil
	}

	s.cached = &doc
	return s.cached
}

func (s *CVStore) saveMeta(doc models.CVDocument) error {
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errs.NewStoreIOError("encode cv metadata", err)
	}

	dir := filepath.Dir(s.metaPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.NewStoreIOError("create data directory", err)
	}

	tmp, err := os.CreateTemp(dir, "cv-*.json")
	if err != nil {
		return errs.NewStoreIOError("create temp cv metadata file", err)
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errs.NewStoreIOError("write cv metadata", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errs.NewStoreIOError("close cv metadata", err)
	}

	if err := os.Rename(tmp.Name(), s.metaPath); err != nil {
		os.Remove(tmp.Name())
		return errs.NewStoreIOError("replace cv metadata", err)
	}
	return nil
}
