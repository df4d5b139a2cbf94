package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpupo63/site-content-backend/errs"
)

func TestCVStore_GetEmpty(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CVStore().Get()
	require.Error(t, err)
	require.True(t, errs.IsNotFound(err))
}

func TestCVStore_SetAndGet(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.CVStore().Set([]byte("%PDF-1.4 fake"), "resume.pdf", "application/pdf")
	require.NoError(t, err)
	require.Equal(t, "resume.pdf", doc.OriginalName)
	require.Equal(t, "application/pdf", doc.FileType)
	require.False(t, doc.UploadDate.IsZero())

	got, err := s.CVStore().Get()
	require.NoError(t, err)
	require.Equal(t, doc, got)

	content, err := os.ReadFile(s.MediaStore().FilePath(doc.Filename))
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-1.4 fake"), content)
}

func TestCVStore_ReplaceKeepsExactlyOne(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CVStore().Set([]byte("old version"), "resume-v1.pdf", "application/pdf")
	require.NoError(t, err)

	second, err := s.CVStore().Set([]byte("new version"), "resume-v2.pdf", "application/pdf")
	require.NoError(t, err)
	require.NotEqual(t, first.Filename, second.Filename)

	got, err := s.CVStore().Get()
	require.NoError(t, err)
	require.Equal(t, second, got)

	// Old blob is unreachable, new one present
	_, err = os.Stat(s.MediaStore().FilePath(first.Filename))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(s.MediaStore().FilePath(second.Filename))
	require.NoError(t, err)
}

func TestCVStore_Clear(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.CVStore().Set([]byte("bytes"), "resume.pdf", "application/pdf")
	require.NoError(t, err)

	require.NoError(t, s.CVStore().Clear())

	_, err = s.CVStore().Get()
	require.Error(t, err)
	require.True(t, errs.IsNotFound(err))

	_, err = os.Stat(s.MediaStore().FilePath(doc.Filename))
	require.True(t, os.IsNotExist(err))
}

func TestCVStore_ClearEmptyIsError(t *testing.T) {
	s := newTestStore(t)

	err := s.CVStore().Clear()
	require.Error(t, err)
	require.True(t, errs.IsNotFound(err))
}

func TestCVStore_RejectsType(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CVStore().Set([]byte("plain text"), "resume.txt", "text/plain")
	require.Error(t, err)
	require.True(t, errs.IsInvalidType(err))

	_, err = s.CVStore().Get()
	require.True(t, errs.IsNotFound(err))
}

func TestCVStore_RejectsOversize(t *testing.T) {
	base := t.TempDir()
	s, err := Open(filepath.Join(base, "data"), filepath.Join(base, "public"), 16)
	require.NoError(t, err)

	_, err = s.CVStore().Set(make([]byte, 17), "resume.pdf", "application/pdf")
	require.Error(t, err)
	require.True(t, errs.IsInvalidType(err))

	// No blob left behind
	assets, err := s.MediaStore().List()
	require.NoError(t, err)
	require.Empty(t, assets)
}

func TestCVStore_SurvivesReopen(t *testing.T) {
	base := t.TempDir()
	dataDir := filepath.Join(base, "data")
	publicDir := filepath.Join(base, "public")

	s, err := Open(dataDir, publicDir, 0)
	require.NoError(t, err)

	doc, err := s.CVStore().Set([]byte("bytes"), "resume.pdf", "application/pdf")
	require.NoError(t, err)

	reopened, err := Open(dataDir, publicDir, 0)
	require.NoError(t, err)

	got, err := reopened.CVStore().Get()
	require.NoError(t, err)
	require.Equal(t, doc.Filename, got.Filename)
	require.Equal(t, doc.OriginalName, got.OriginalName)
}
