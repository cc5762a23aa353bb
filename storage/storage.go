// Package storage persists uploaded images. Stored files live under
// category-named directories (profile_pictures, projects, articles,
// certificates); entities keep the relative path and URLs are derived from it.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Directory names, one per image category.
const (
	DirProfilePictures = "profile_pictures"
	DirProjects        = "projects"
	DirArticles        = "articles"
	DirCertificates    = "certificates"
)

// Store saves, deletes and resolves uploaded image files. Save returns the
// stored relative path (dir/name); Delete of an already-absent path is not an
// error.
type Store interface {
	Save(dir, filename string, r io.Reader) (string, error)
	Delete(relPath string) error
	URL(relPath string) string
}

// uniqueName prefixes the sanitized original filename with random hex so two
// uploads of the same file never collide on a path.
func uniqueName(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	prefix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s_%s", prefix, base)
}

// LocalStore keeps files on disk under a media root.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// Root returns the media root directory.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Save(dir, filename string, r io.Reader) (string, error) {
	name := uniqueName(filename)
	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return "", fmt.Errorf("creating media directory %s: %w", dir, err)
	}

	relPath := filepath.ToSlash(filepath.Join(dir, name))
	f, err := os.Create(filepath.Join(s.root, dir, name))
	if err != nil {
		return "", fmt.Errorf("creating media file %s: %w", relPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing media file %s: %w", relPath, err)
	}
	return relPath, nil
}

func (s *LocalStore) Delete(relPath string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing media file %s: %w", relPath, err)
	}
	return nil
}

func (s *LocalStore) URL(relPath string) string {
	return s.baseURL + "/" + strings.TrimLeft(relPath, "/")
}
