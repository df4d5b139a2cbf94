package store

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpupo63/site-content-backend/errs"
	"github.com/rpupo63/site-content-backend/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	base := t.TempDir()
	s, err := Open(filepath.Join(base, "data"), filepath.Join(base, "public"), 0)
	require.NoError(t, err)
	return s
}

func testProject() models.Project {
	return models.Project{
		Title:           "Test Project",
		Description:     "A test project",
		LongDescription: "A longer description of the test project",
		Features:        []string{"feature one", "feature two"},
		Images:          []string{},
		Technologies:    []string{"Go", "chi"},
		GithubRepo:      "https://github.com/example/test-project",
		LiveDemo:        "https://example.com",
		InProgress:      true,
	}
}

func TestProjectStore_CreateAndList(t *testing.T) {
	s := newTestStore(t)

	created, err := s.ProjectStore().Create(testProject())
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	projects, err := s.ProjectStore().List()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, created, projects[0])
}

func TestProjectStore_ListFirstRun(t *testing.T) {
	s := newTestStore(t)

	projects, err := s.ProjectStore().List()
	require.NoError(t, err)
	require.NotNil(t, projects)
	require.Empty(t, projects)
}

func TestProjectStore_CreateValidation(t *testing.T) {
	s := newTestStore(t)

	missingTitle := testProject()
	missingTitle.Title = ""
	_, err := s.ProjectStore().Create(missingTitle)
	require.Error(t, err)
	require.True(t, errs.IsValidation(err))

	missingFeatures := testProject()
	missingFeatures.Features = nil
	_, err = s.ProjectStore().Create(missingFeatures)
	require.Error(t, err)
	require.True(t, errs.IsValidation(err))

	// Nothing committed
	projects, err := s.ProjectStore().List()
	require.NoError(t, err)
	require.Empty(t, projects)
}

func TestProjectStore_UpdateNotFound(t *testing.T) {
	s := newTestStore(t)

	created, err := s.ProjectStore().Create(testProject())
	require.NoError(t, err)

	_, err = s.ProjectStore().Update(created.ID+1, testProject())
	require.Error(t, err)
	require.True(t, errs.IsNotFound(err))

	// Collection unchanged
	projects, err := s.ProjectStore().List()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, created, projects[0])
}

func TestProjectStore_UpdatePreservesID(t *testing.T) {
	s := newTestStore(t)

	created, err := s.ProjectStore().Create(testProject())
	require.NoError(t, err)

	replacement := testProject()
	replacement.ID = 99999 // must be ignored
	replacement.Title = "Renamed Project"

	updated, err := s.ProjectStore().Update(created.ID, replacement)
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Renamed Project", updated.Title)
}

func TestProjectStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	fields := testProject()
	created, err := s.ProjectStore().Create(fields)
	require.NoError(t, err)

	updated, err := s.ProjectStore().Update(created.ID, fields)
	require.NoError(t, err)

	projects, err := s.ProjectStore().List()
	require.NoError(t, err)
	require.Len(t, projects, 1)

	expected := fields
	expected.ID = created.ID
	require.Equal(t, expected, updated)
	require.Equal(t, expected, projects[0])
}

func TestProjectStore_DeleteNotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.ProjectStore().Delete(12345)
	require.Error(t, err)
	require.True(t, errs.IsNotFound(err))
}

func TestProjectStore_DeleteCascadesImages(t *testing.T) {
	s := newTestStore(t)

	storageName, err := s.MediaStore().Put([]byte("fake png bytes"), "shot.png", "image/png", AllowImages)
	require.NoError(t, err)

	fields := testProject()
	fields.Images = []string{PublicPath(storageName)}
	created, err := s.ProjectStore().Create(fields)
	require.NoError(t, err)

	require.NoError(t, s.ProjectStore().Delete(created.ID))

	projects, err := s.ProjectStore().List()
	require.NoError(t, err)
	require.Empty(t, projects)

	// The referenced blob must be gone
	_, err = os.Stat(s.MediaStore().FilePath(storageName))
	require.True(t, os.IsNotExist(err))

	err = s.MediaStore().Delete(storageName)
	require.Error(t, err)
	require.True(t, errs.IsNotFound(err))
}

func TestProjectStore_DeleteSurvivesMissingImages(t *testing.T) {
	s := newTestStore(t)

	fields := testProject()
	fields.Images = []string{PublicPath("deadbeef-gone.png")}
	created, err := s.ProjectStore().Create(fields)
	require.NoError(t, err)

	// Blob never existed; the record delete must still succeed
	require.NoError(t, s.ProjectStore().Delete(created.ID))

	projects, err := s.ProjectStore().List()
	require.NoError(t, err)
	require.Empty(t, projects)
}

func TestProjectStore_ConcurrentCreates(t *testing.T) {
	s := newTestStore(t)

	const n = 50

	type result struct {
		id  int64
		err error
	}

	var wg sync.WaitGroup
	results := make(chan result, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := s.ProjectStore().Create(testProject())
			results <- result{id: created.ID, err: err}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool)
	for r := range results {
		require.NoError(t, r.err)
		require.False(t, seen[r.id], "duplicate id %d", r.id)
		seen[r.id] = true
	}
	require.Len(t, seen, n)

	projects, err := s.ProjectStore().List()
	require.NoError(t, err)
	require.Len(t, projects, n)
}

func TestProjectStore_PersistsAcrossReopen(t *testing.T) {
	base := t.TempDir()
	dataDir := filepath.Join(base, "data")
	publicDir := filepath.Join(base, "public")

	s, err := Open(dataDir, publicDir, 0)
	require.NoError(t, err)

	created, err := s.ProjectStore().Create(testProject())
	require.NoError(t, err)

	reopened, err := Open(dataDir, publicDir, 0)
	require.NoError(t, err)

	projects, err := reopened.ProjectStore().List()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, created, projects[0])
}
