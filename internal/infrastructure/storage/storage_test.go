package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	now := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

	name := ObjectName("products/p1/", "Front View.JPG", "image/jpeg", now)
	assert.True(t, strings.HasPrefix(name, "products/p1/20250203040506-"), name)
	assert.True(t, strings.HasSuffix(name, ".jpg"), name)

	unknown := ObjectName("leads", "notes", "application/x-unknown", now)
	assert.True(t, strings.HasSuffix(unknown, ".bin"), unknown)

	fromFilename := ObjectName("leads", "plan.pdf", "", now)
	assert.True(t, strings.HasSuffix(fromFilename, ".pdf"), fromFilename)
}

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage("http://localhost:8080/files")

	file, err := s.Upload(ctx, "moodboards", "ref.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(file.URL, "http://localhost:8080/files/moodboards/"))
	assert.True(t, s.Has(file.Ref))

	require.NoError(t, s.Delete(ctx, file.Ref))
	assert.False(t, s.Has(file.Ref))
	require.NoError(t, s.Delete(ctx, "never-existed"))
}

func TestMemoryStorageServesUploads(t *testing.T) {
	s := NewMemoryStorage("http://localhost:8080/files/")

	file, err := s.Upload(context.Background(), "moodboards", "ref.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/"+file.Ref, s.URL(file.Ref))

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+file.Ref, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rec.Body.String())

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/moodboards/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/"+file.Ref, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.True(t, s.Has(file.Ref))
}
