package store

import (
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/site-content-backend/errs"
	"github.com/rpupo63/site-content-backend/models"
)

// PublicPrefix is the URL prefix under which stored blobs are reachable.
const PublicPrefix = "/uploads/"

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

var documentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// AllowImages accepts any image/* content type.
func AllowImages(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// AllowDocuments accepts PDF and Word document content types.
func AllowDocuments(contentType string) bool {
	for _, t := range documentTypes {
		if contentType == t {
			return true
		}
	}
	return false
}

// MediaStore persists binary assets in a flat directory. Storage names
// combine a fresh uuid with a sanitized version of the original filename, so
// names are collision-free and still human-traceable. Blob writes are
// independent per blob; no cross-blob locking is needed.
type MediaStore struct {
	dir    string
	logger zerolog.Logger
}

func NewMediaStore(dir string) (*MediaStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.NewStoreIOError("create uploads directory", err)
	}
	logger := log.With().Str("storeName", "mediaStore").Logger()
	return &MediaStore{dir: dir, logger: logger}, nil
}

// Dir returns the directory blobs are stored in.
func (s *MediaStore) Dir() string {
	return s.dir
}

// PublicPath derives the public URL for a storage name.
func PublicPath(storageName string) string {
	return PublicPrefix + storageName
}

// FilePath returns the on-disk path for a storage name.
func (s *MediaStore) FilePath(storageName string) string {
	return filepath.Join(s.dir, storageName)
}

// Put validates the declared content type against the allow-list, writes the
// bytes durably and returns the generated storage name.
func (s *MediaStore) Put(data []byte, originalName, contentType string, allowed func(string) bool) (string, error) {
	if !allowed(contentType) {
		return "", errs.NewInvalidTypeError(contentType, append([]string{"image/*"}, documentTypes...))
	}

	storageName := uuid.NewString() + "-" + sanitizeName(originalName)
	path := filepath.Join(s.dir, storageName)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errs.NewStoreIOError("write blob "+storageName, err)
	}

	s.logger.Info().
		Str("storageName", storageName).
		Int("size", len(data)).
		Str("contentType", contentType).
		Msg("Stored blob")

	return storageName, nil
}

// Delete removes the blob identified by its full storage name or its uuid
// prefix. Returns a not-found error if no such blob exists.
func (s *MediaStore) Delete(idOrName string) error {
	storageName, err := s.resolve(idOrName)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, storageName)); err != nil {
		if os.IsNotExist(err) {
			return errs.NewNotFoundError("blob " + idOrName)
		}
		return errs.NewStoreIOError("delete blob "+storageName, err)
	}

	s.logger.Info().Str("storageName", storageName).Msg("Deleted blob")
	return nil
}

// List enumerates stored assets with metadata derived from the filesystem.
// Linear in the number of blobs; no index is maintained.
func (s *MediaStore) List() ([]models.MediaAsset, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errs.NewStoreIOError("read uploads directory", err)
	}

	assets := make([]models.MediaAsset, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.logger.Warn().Err(err).Str("name", entry.Name()).Msg("Skipping unreadable blob")
			continue
		}

		id, name := splitStorageName(entry.Name())
		assets = append(assets, models.MediaAsset{
			ID:         id,
			URL:        PublicPath(entry.Name()),
			Name:       name,
			Size:       info.Size(),
			UploadedAt: info.ModTime().UTC(),
			MimeType:   mime.TypeByExtension(filepath.Ext(entry.Name())),
		})
	}

	return assets, nil
}

// resolve maps a full storage name or uuid prefix to a storage name.
func (s *MediaStore) resolve(idOrName string) (string, error) {
	if _, err := os.Stat(filepath.Join(s.dir, idOrName)); err == nil {
		return idOrName, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", errs.NewStoreIOError("read uploads directory", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), idOrName) {
			return entry.Name(), nil
		}
	}

	return "", errs.NewNotFoundError("blob " + idOrName)
}

func sanitizeName(originalName string) string {
	return unsafeNameChars.ReplaceAllString(originalName, "")
}

// splitStorageName splits "<uuid>-<original name>" back into its parts. The
// uuid is the first five hyphen-separated groups.
func splitStorageName(storageName string) (id, name string) {
	parts := strings.SplitN(storageName, "-", 6)
	if len(parts) < 6 {
		return storageName, ""
	}
	return strings.Join(parts[:5], "-"), parts[5]
}
