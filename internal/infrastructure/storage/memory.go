package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"rugstore/internal/domain/service"
)

type memoryObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

// MemoryStorage keeps uploads in process for local runs and tests. It is
// also an http.Handler serving objects by ref, so the URLs it returns resolve
// when the handler is mounted under baseURL.
type MemoryStorage struct {
	baseURL string
	mu      sync.Mutex
	objects map[string]memoryObject
}

func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{baseURL: strings.TrimSuffix(baseURL, "/"), objects: make(map[string]memoryObject)}
}

func (m *MemoryStorage) Upload(ctx context.Context, folder, filename, contentType string, content io.Reader) (service.StoredFile, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return service.StoredFile{}, err
	}

	now := time.Now()
	ref := ObjectName(folder, filename, contentType, now)
	m.mu.Lock()
	m.objects[ref] = memoryObject{data: buf.Bytes(), contentType: contentType, modified: now}
	m.mu.Unlock()

	return service.StoredFile{URL: m.URL(ref), Ref: ref}, nil
}

func (m *MemoryStorage) URL(ref string) string {
	return m.baseURL + "/" + ref
}

func (m *MemoryStorage) Delete(ctx context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, ref)
	return nil
}

func (m *MemoryStorage) Has(ref string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[ref]
	return ok
}

// ServeHTTP answers GET and HEAD for the object named by the request path.
func (m *MemoryStorage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	ref := strings.TrimPrefix(r.URL.Path, "/")
	m.mu.Lock()
	obj, ok := m.objects[ref]
	m.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	if obj.contentType != "" {
		w.Header().Set("Content-Type", obj.contentType)
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, r, "", obj.modified, bytes.NewReader(obj.data))
}
