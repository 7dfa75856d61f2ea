package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// URLPrefix is the public path under which uploaded files are served. Product
// and category records reference images by these relative paths.
const URLPrefix = "/uploads"

// LocalStore persists uploaded files on the local filesystem under a fixed
// directory and hands back relative paths for embedding in records.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %q: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory files are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes an uploaded file to disk under a generated name and returns the
// relative path to store on the record.
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %q: %w", file.Filename, err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("product-%s%s", uuid.New().String(), ext)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file %q: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file %q: %w", name, err)
	}

	return URLPrefix + "/" + name, nil
}

// Remove deletes a previously stored file by its relative path. A file that is
// already gone is not an error. Paths outside the upload prefix (such as the
// default placeholder image) are ignored.
func (s *LocalStore) Remove(relPath string) error {
	name, ok := strings.CutPrefix(relPath, URLPrefix+"/")
	if !ok {
		return nil
	}
	// Reject anything that could escape the upload directory.
	if name == "" || name != filepath.Base(name) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveAll deletes a set of stored files, logging and continuing on failure
// so that a bad path never aborts the surrounding record mutation.
func (s *LocalStore) RemoveAll(relPaths []string) {
	for _, p := range relPaths {
		if err := s.Remove(p); err != nil {
			zap.L().Warn("Failed to remove stored image", zap.String("path", p), zap.Error(err))
		}
	}
}
