package blobstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("blob not found")

// Store is the file storage port. Disk is the only adapter today; the
// interface keeps services unaware of where bytes live.
type Store interface {
	Put(fileName string, data []byte) (key string, err error)
	Get(key string) ([]byte, error)
	Delete(key string) error
}

// DiskStore writes blobs under a single directory, keyed uuid_filename so
// repeated uploads of the same file never collide.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Put(fileName string, data []byte) (string, error) {
	key := fmt.Sprintf("%s_%s", uuid.New().String(), sanitizeFileName(fileName))
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return key, nil
}

func (s *DiskStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

func (s *DiskStore) Delete(key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// sanitizeFileName strips path separators and anything else that has no
// business in a stored key.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '.', c == '-', c == '_':
			b.WriteRune(c)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
