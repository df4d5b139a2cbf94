package store

import (
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/site-content-backend/errs"
)

func TestMediaStore_PutGeneratesTraceableName(t *testing.T) {
	s := newTestStore(t)

	storageName, err := s.MediaStore().Put([]byte("bytes"), "my photo (1).png", "image/png", AllowImages)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(storageName, "-myphoto1.png"))

	// The prefix is a valid uuid
	_, err = uuid.Parse(strings.TrimSuffix(storageName, "-myphoto1.png"))
	require.NoError(t, err)

	content, err := os.ReadFile(s.MediaStore().FilePath(storageName))
	require.NoError(t, err)
	require.Equal(t, []byte("bytes"), content)
}

func TestMediaStore_PutRejectsInvalidType(t *testing.T) {
	s := newTestStore(t)

	_, err := s.MediaStore().Put([]byte("not an image"), "notes.txt", "text/plain", AllowImages)
	require.Error(t, err)
	require.True(t, errs.IsInvalidType(err))

	// No blob created
	assets, err := s.MediaStore().List()
	require.NoError(t, err)
	require.Empty(t, assets)
}

func TestMediaStore_AllowDocuments(t *testing.T) {
	require.True(t, AllowDocuments("application/pdf"))
	require.True(t, AllowDocuments("application/msword"))
	require.False(t, AllowDocuments("image/png"))
	require.False(t, AllowDocuments("text/plain"))
}

func TestMediaStore_DeleteByUUIDPrefix(t *testing.T) {
	s := newTestStore(t)

	storageName, err := s.MediaStore().Put([]byte("bytes"), "shot.png", "image/png", AllowImages)
	require.NoError(t, err)

	id := strings.TrimSuffix(storageName, "-shot.png")
	require.NoError(t, s.MediaStore().Delete(id))

	_, err = os.Stat(s.MediaStore().FilePath(storageName))
	require.True(t, os.IsNotExist(err))
}

func TestMediaStore_DeleteMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.MediaStore().Delete("no-such-blob")
	require.Error(t, err)
	require.True(t, errs.IsNotFound(err))
}

func TestMediaStore_List(t *testing.T) {
	s := newTestStore(t)

	first, err := s.MediaStore().Put([]byte("aaaa"), "a.png", "image/png", AllowImages)
	require.NoError(t, err)
	second, err := s.MediaStore().Put([]byte("bbbbbbbb"), "b.jpg", "image/jpeg", AllowImages)
	require.NoError(t, err)

	assets, err := s.MediaStore().List()
	require.NoError(t, err)
	require.Len(t, assets, 2)

	byURL := make(map[string]int64)
	for _, asset := range assets {
		require.NotEmpty(t, asset.ID)
		require.False(t, asset.UploadedAt.IsZero())
		byURL[asset.URL] = asset.Size
	}
	require.Equal(t, int64(4), byURL[PublicPath(first)])
	require.Equal(t, int64(8), byURL[PublicPath(second)])
}
