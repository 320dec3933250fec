// Package store persists the planner's per-category collections. A backend
// exposes whole-document load/save per collection; the Collections wrapper
// layers typed append/replace/remove operations on top and serializes writers
// per collection so that concurrent read-modify-write cycles cannot lose
// updates.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned when an index or identifier does not resolve to an
// existing record. Lookups that fail have no side effects.
var ErrNotFound = errors.New("record not found")

// DocumentStore is the raw persistence mechanism: one JSON array document per
// collection. Load returns an empty document for collections that do not
// exist yet. Implementations need not be safe for concurrent use on the same
// collection; Collections provides that.
type DocumentStore interface {
	Load(collection string) ([]byte, error)
	Save(collection string, doc []byte) error
	Close() error
}

// Record is a planner record addressable by stable identifier.
type Record interface {
	RecordID() string
}

// Collections wraps a DocumentStore with one lock per collection name. Every
// operation holds the collection's lock across its full load-mutate-save
// cycle, so two concurrent appends to the same collection are both retained.
type Collections struct {
	backend DocumentStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCollections wraps a backend.
func NewCollections(backend DocumentStore) *Collections {
	return &Collections{
		backend: backend,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Close closes the underlying backend.
func (c *Collections) Close() error {
	return c.backend.Close()
}

func (c *Collections) lock(collection string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		c.locks[collection] = l
	}
	return l
}

func load[T any](c *Collections, collection string) ([]T, error) {
	doc, err := c.backend.Load(collection)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}
	records := []T{}
	if len(doc) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(doc, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", collection, err)
	}
	return records, nil
}

func save[T any](c *Collections, collection string, records []T) error {
	doc, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", collection, err)
	}
	if err := c.backend.Save(collection, doc); err != nil {
		return fmt.Errorf("save %s: %w", collection, err)
	}
	return nil
}

// Load returns every record in the collection in insertion order.
func Load[T any](c *Collections, collection string) ([]T, error) {
	l := c.lock(collection)
	l.Lock()
	defer l.Unlock()
	return load[T](c, collection)
}

// Append adds records to the end of the collection.
func Append[T any](c *Collections, collection string, records ...T) error {
	if len(records) == 0 {
		return nil
	}
	l := c.lock(collection)
	l.Lock()
	defer l.Unlock()

	existing, err := load[T](c, collection)
	if err != nil {
		return err
	}
	return save(c, collection, append(existing, records...))
}

// UpdateAt mutates the record at a positional index in place.
func UpdateAt[T any](c *Collections, collection string, index int, fn func(*T)) error {
	l := c.lock(collection)
	l.Lock()
	defer l.Unlock()

	records, err := load[T](c, collection)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return ErrNotFound
	}
	fn(&records[index])
	return save(c, collection, records)
}

// RemoveAt deletes the record at a positional index. Later records shift down
// by one; positional addressing is unstable across concurrent deletes, which
// is why id-addressed routes are preferred.
func RemoveAt[T any](c *Collections, collection string, index int) error {
	l := c.lock(collection)
	l.Lock()
	defer l.Unlock()

	records, err := load[T](c, collection)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return ErrNotFound
	}
	records = append(records[:index], records[index+1:]...)
	return save(c, collection, records)
}

// UpsertBy replaces the first record matching match, or appends when none
// does. The whole load-mutate-save cycle runs under the collection lock, so
// two concurrent upserts for the same key cannot create duplicates.
func UpsertBy[T any](c *Collections, collection string, match func(T) bool, record T) error {
	l := c.lock(collection)
	l.Lock()
	defer l.Unlock()

	records, err := load[T](c, collection)
	if err != nil {
		return err
	}
	for i := range records {
		if match(records[i]) {
			records[i] = record
			return save(c, collection, records)
		}
	}
	return save(c, collection, append(records, record))
}

// UpdateByID mutates the record with the given stable identifier in place.
func UpdateByID[T Record](c *Collections, collection, id string, fn func(*T)) error {
	l := c.lock(collection)
	l.Lock()
	defer l.Unlock()

	records, err := load[T](c, collection)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].RecordID() == id {
			fn(&records[i])
			return save(c, collection, records)
		}
	}
	return ErrNotFound
}

// ReplaceByID swaps out the record with the given stable identifier.
func ReplaceByID[T Record](c *Collections, collection, id string, record T) error {
	return UpdateByID(c, collection, id, func(slot *T) { *slot = record })
}

// RemoveByID deletes exactly the record with the given stable identifier,
// regardless of its position.
func RemoveByID[T Record](c *Collections, collection, id string) error {
	l := c.lock(collection)
	l.Lock()
	defer l.Unlock()

	records, err := load[T](c, collection)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].RecordID() == id {
			records = append(records[:i], records[i+1:]...)
			return save(c, collection, records)
		}
	}
	return ErrNotFound
}
