package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/media")

	relPath, err := store.Save(DirProjects, "screenshot.png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, DirProjects+"/"), relPath)
	assert.Regexp(t, `^projects/[0-9a-f]{8}_screenshot\.png$`, relPath)

	data, err := os.ReadFile(filepath.Join(store.Root(), filepath.FromSlash(relPath)))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestLocalStoreSaveAvoidsCollisions(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/media")

	first, err := store.Save(DirArticles, "cover.jpg", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := store.Save(DirArticles, "cover.jpg", strings.NewReader("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStoreDelete(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/media")

	relPath, err := store.Save(DirCertificates, "cert.pdf", strings.NewReader("bytes"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(relPath))
	_, err = os.Stat(filepath.Join(store.Root(), filepath.FromSlash(relPath)))
	assert.True(t, os.IsNotExist(err))

	// Deleting an already-absent file is not an error.
	assert.NoError(t, store.Delete(relPath))
	assert.NoError(t, store.Delete("profile_pictures/never-existed.png"))
}

func TestLocalStoreURL(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/media/")
	assert.Equal(t, "/media/projects/a.png", store.URL("projects/a.png"))

	absolute := NewLocalStore(t.TempDir(), "https://cdn.example.com/media")
	assert.Equal(t, "https://cdn.example.com/media/projects/a.png", absolute.URL("projects/a.png"))
}

func TestUniqueNameSanitizesSpaces(t *testing.T) {
	name := uniqueName("my summer photo.png")
	assert.Regexp(t, `^[0-9a-f]{8}_my_summer_photo\.png$`, name)
}
