package store

import (
	"path/filepath"
)

// Store bundles the content stores over one data directory layout:
//
//	<publicDir>/uploads/        blob files
//	<dataDir>/projects.json     project collection
//	<dataDir>/cv.json           cv metadata sidecar
type Store struct {
	projectStore *ProjectStore
	mediaStore   *MediaStore
	cvStore      *CVStore
}

// Open initializes the stores, creating the directories as needed.
func Open(dataDir, publicDir string, cvMaxBytes int64) (*Store, error) {
	mediaStore, err := NewMediaStore(filepath.Join(publicDir, "uploads"))
	if err != nil {
		return nil, err
	}

	return &Store{
		projectStore: NewProjectStore(filepath.Join(dataDir, "projects.json"), mediaStore),
		mediaStore:   mediaStore,
		cvStore:      NewCVStore(filepath.Join(dataDir, "cv.json"), mediaStore, cvMaxBytes),
	}, nil
}

// Accessor methods for each store

func (s *Store) ProjectStore() *ProjectStore {
	return s.projectStore
}

func (s *Store) MediaStore() *MediaStore {
	return s.mediaStore
}

func (s *Store) CVStore() *CVStore {
	return s.cvStore
}
