package store

import (
	"fmt"
	"os"
	"path/filepath"

	"avplanner/internal/logging"
)

// FileStore keeps one JSON file per collection under a data directory. This
// matches the layout the original deployment used, so existing data files are
// readable as-is.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory required")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	logging.StoreDebug("file store at %s", dir)
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Load reads a collection document. Missing files are an empty collection.
func (s *FileStore) Load(collection string) ([]byte, error) {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Save writes a collection document atomically via a rename.
func (s *FileStore) Save(collection string, doc []byte) error {
	path := s.path(collection)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, doc, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error {
	return nil
}
