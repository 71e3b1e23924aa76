// Package storage implements the raw-content file area. Each collection owns a
// subdirectory; stored filenames are generated, never taken from user input.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ContentStore writes and removes per-collection raw uploads under a root
// directory.
type ContentStore struct {
	root string
}

// NewContentStore creates a content store rooted at the given directory.
func NewContentStore(root string) *ContentStore {
	return &ContentStore{root: root}
}

// CollectionDir returns the directory holding a collection's raw files.
func (s *ContentStore) CollectionDir(collection string) string {
	return filepath.Join(s.root, collection)
}

// EnsureDir creates the collection directory if it does not exist.
func (s *ContentStore) EnsureDir(collection string) error {
	return os.MkdirAll(s.CollectionDir(collection), 0o755)
}

// Store writes data under a generated unique filename that preserves the
// original extension. The write is atomic: a temp file is renamed into place,
// so a reader never observes partial content.
func (s *ContentStore) Store(collection, originalName string, data []byte) (storedPath, filename string, err error) {
	dir := s.CollectionDir(collection)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create collection directory: %w", err)
	}

	filename = GenerateFilename(originalName)
	storedPath = filepath.Join(dir, filename)

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", "", fmt.Errorf("failed to close upload: %w", err)
	}
	if err := os.Rename(tmpName, storedPath); err != nil {
		os.Remove(tmpName)
		return "", "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	return storedPath, filename, nil
}

// Delete removes a single stored file. Missing files are not an error.
func (s *ContentStore) Delete(collection, filename string) error {
	err := os.Remove(filepath.Join(s.CollectionDir(collection), filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Remove deletes the entire collection subtree. Removing an absent
// collection is a no-op so cascading deletes stay retryable.
func (s *ContentStore) Remove(collection string) error {
	return os.RemoveAll(s.CollectionDir(collection))
}

// GenerateFilename produces a collision-free stored name from a random uuid,
// keeping only the extension of the untrusted original name.
func GenerateFilename(originalName string) string {
	ext := filepath.Ext(filepath.Base(originalName))
	// Guard against absurd or path-ish "extensions"
	if len(ext) > 16 || strings.ContainsAny(ext, "/\\") {
		ext = ""
	}
	return uuid.NewString() + strings.ToLower(ext)
}
