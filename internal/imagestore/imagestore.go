// Package imagestore keeps uploaded profile and event images. Third-party
// storage stays an external collaborator; this local-disk implementation
// issues opaque refs the same way a remote store would.
package imagestore

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return &LocalStore{dir: dir}, nil
}

// Save writes the uploaded file under a fresh uuid-based ref and returns the
// ref.
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("file.Open -> %w", err)
	}
	defer src.Close()

	ref := uuid.NewString() + filepath.Ext(file.Filename)

	dst, err := os.Create(filepath.Join(s.dir, ref))
	if err != nil {
		return "", fmt.Errorf("os.Create -> %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("io.Copy -> %w", err)
	}

	return ref, nil
}

// Remove deletes a stored image. A missing ref is not an error.
func (s *LocalStore) Remove(ref string) error {
	err := os.Remove(filepath.Join(s.dir, ref))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}
