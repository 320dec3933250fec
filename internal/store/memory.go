package store

import "sync"

// MemoryStore is an in-memory backend for tests and ephemeral runs.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore returns an empty in-memory backend.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Load returns the stored document, or nil for unknown collections.
func (s *MemoryStore) Load(collection string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[collection]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, nil
}

// Save stores a copy of the document.
func (s *MemoryStore) Save(collection string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(doc))
	copy(stored, doc)
	s.docs[collection] = stored
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
