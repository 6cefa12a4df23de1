package repository

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"

	"rugstore/internal/domain/raw"
	"rugstore/pkg/errors"
)

// MemoryStores keeps collections in process. It backs STORE_DRIVER=memory
// and tests. Documents are deep-copied on the way in and out.
type MemoryStores struct {
	mu          sync.Mutex
	collections map[string]*MemoryDocumentStore
}

func NewMemoryStores() *MemoryStores {
	return &MemoryStores{collections: make(map[string]*MemoryDocumentStore)}
}

func (s *MemoryStores) Collection(name string) DocumentStore {
	return s.collection(name)
}

func (s *MemoryStores) collection(name string) *MemoryDocumentStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		c = &MemoryDocumentStore{name: name, docs: make(map[string]raw.Document)}
		s.collections[name] = c
	}
	return c
}

// Put stores doc as is, which lets tests plant legacy or malformed shapes.
func (s *MemoryStores) Put(collection, id string, doc raw.Document) {
	c := s.collection(collection)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[id] = cloneDocument(doc)
}

// Raw returns a copy of a stored document.
func (s *MemoryStores) Raw(collection, id string) (raw.Document, bool) {
	c := s.collection(collection)
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.docs[id]
	return cloneDocument(doc), ok
}

// FailWith makes every call on collection return err until cleared with nil.
func (s *MemoryStores) FailWith(collection string, err error) {
	c := s.collection(collection)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail = err
}

type MemoryDocumentStore struct {
	mu   sync.RWMutex
	name string
	docs map[string]raw.Document
	fail error
}

func (s *MemoryDocumentStore) NewID() string {
	return uuid.NewString()
}

func (s *MemoryDocumentStore) Get(ctx context.Context, id string) (raw.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fail != nil {
		return nil, s.fail
	}

	doc, ok := s.docs[id]
	if !ok {
		return nil, errors.NotFound(s.name, nil)
	}
	return cloneDocument(doc), nil
}

func (s *MemoryDocumentStore) FindOne(ctx context.Context, field string, value any) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fail != nil {
		return Snapshot{}, s.fail
	}

	for _, id := range s.sortedIDs() {
		if v, ok := s.docs[id][field]; ok && reflect.DeepEqual(v, value) {
			return Snapshot{ID: id, Data: cloneDocument(s.docs[id])}, nil
		}
	}
	return Snapshot{}, errors.NotFound(s.name, nil)
}

func (s *MemoryDocumentStore) All(ctx context.Context) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fail != nil {
		return nil, s.fail
	}

	snapshots := make([]Snapshot, 0, len(s.docs))
	for _, id := range s.sortedIDs() {
		snapshots = append(snapshots, Snapshot{ID: id, Data: cloneDocument(s.docs[id])})
	}
	return snapshots, nil
}

func (s *MemoryDocumentStore) Set(ctx context.Context, id string, doc raw.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}

	s.docs[id] = cloneDocument(doc)
	return nil
}

func (s *MemoryDocumentStore) SetAll(ctx context.Context, docs []Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}

	for _, d := range docs {
		s.docs[d.ID] = cloneDocument(d.Data)
	}
	return nil
}

func (s *MemoryDocumentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}

	delete(s.docs, id)
	return nil
}

// sortedIDs gives All a stable order; callers hold the lock.
func (s *MemoryDocumentStore) sortedIDs() []string {
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func cloneDocument(doc raw.Document) raw.Document {
	if doc == nil {
		return nil
	}
	out := make(raw.Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneDocument(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	}
	return v
}
