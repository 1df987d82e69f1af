// Package imagestore persists uploaded recipe images on disk. Files get
// random names so uploads can never collide or traverse out of the root.
package imagestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes images under a single root directory.
type Store struct {
	root string
}

// New creates the root directory if needed and returns a Store over it.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image root %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Save writes the image to a new uuid-named file, keeping the original
// extension, and returns the stored filename.
func (s *Store) Save(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	name := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored image. Removing a name that is already gone is
// not an error.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image %s: %w", name, err)
	}
	return nil
}

// Path returns the on-disk location of a stored image.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, filepath.Base(name))
}
