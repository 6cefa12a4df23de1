package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rugstore/internal/accessor"
	"rugstore/internal/adapter/api"
	"rugstore/internal/adapter/api/handler"
	"rugstore/internal/adapter/api/middleware"
	adapter "rugstore/internal/adapter/repository"
	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
	"rugstore/internal/infrastructure/cache"
	"rugstore/internal/infrastructure/ratelimit"
	"rugstore/internal/infrastructure/storage"
	"rugstore/internal/infrastructure/websocket"
	"rugstore/internal/transform"
	"rugstore/internal/usecase"
	"rugstore/pkg/errors"
	"rugstore/pkg/logger"
	"rugstore/pkg/response"
)

const cookieName = "__session"

type fakeIdentity struct {
	tokens  map[string]*entity.Principal
	cookies map[string]*entity.Principal
}

func (f *fakeIdentity) VerifyIDToken(ctx context.Context, idToken string) (*entity.Principal, error) {
	if p, ok := f.tokens[idToken]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func (f *fakeIdentity) CreateSessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	cookie := "session-" + idToken
	f.cookies[cookie] = f.tokens[idToken]
	return cookie, nil
}

func (f *fakeIdentity) VerifySessionCookie(ctx context.Context, cookie string) (*entity.Principal, error) {
	if p, ok := f.cookies[cookie]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("invalid cookie")
}

func (f *fakeIdentity) RevokeRefreshTokens(ctx context.Context, uid string) error {
	for cookie, p := range f.cookies {
		if p.UID == uid {
			delete(f.cookies, cookie)
		}
	}
	return nil
}

func (f *fakeIdentity) SetAdmin(ctx context.Context, email string, admin bool) (string, error) {
	return email, nil
}

type testServer struct {
	e        *echo.Echo
	stores   *adapter.MemoryStores
	files    *storage.MemoryStorage
	identity *fakeIdentity
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.Nop()
	stores := adapter.NewMemoryStores()
	repos := adapter.New(stores)
	tr := transform.New()
	c := cache.Nop()
	files := storage.NewMemoryStorage("https://files.test")
	identity := &fakeIdentity{
		tokens: map[string]*entity.Principal{
			"admin-token":   {UID: "admin", Email: "owner@rugs.example", Admin: true},
			"visitor-token": {UID: "visitor", Email: "visitor@example.com"},
		},
		cookies: map[string]*entity.Principal{
			"admin-cookie":   {UID: "admin", Email: "owner@rugs.example", Admin: true},
			"visitor-cookie": {UID: "visitor", Email: "visitor@example.com"},
		},
	}
	wsManager := websocket.NewManager(log)

	catalog := accessor.NewCatalog(repos.Products, repos.Collections, repos.WeaveTypes, repos.Content, tr, c, log)
	leadReader := accessor.NewLeads(repos.Leads, tr, log)
	sessions := usecase.NewSessionUseCase(identity, time.Hour, log)
	leadUseCase := usecase.NewLeadUseCase(repos.Leads, repos.Products, leadReader, wsManager, tr, files, c, log)

	e := echo.New()
	e.Validator = api.NewValidator()
	limiter := ratelimit.NewRateLimiter(map[ratelimit.Action]ratelimit.Policy{
		ratelimit.ActionSubmitLead: {PerMinute: 1, Burst: 3},
		ratelimit.ActionUpload:     {PerMinute: 10, Burst: 10},
	})

	Setup(e, Handlers{
		Catalog:  handler.NewCatalogHandler(catalog),
		Leads:    handler.NewLeadHandler(leadUseCase, leadReader),
		Files:    handler.NewFileHandler(files, 1024, log),
		Sessions: handler.NewSessionHandler(sessions, cookieName, false),
		Admin: handler.NewAdminHandler(catalog,
			usecase.NewProductUseCase(repos.Products, tr, files, c, log),
			usecase.NewCollectionUseCase(repos.Collections, tr, files, c, log),
			usecase.NewWeaveTypeUseCase(repos.WeaveTypes, tr, files, c, log),
			usecase.NewContentUseCase(repos.Content, tr, files, c, log)),
		Health:    handler.NewHealthHandler(c, wsManager),
		WebSocket: handler.NewWebSocketHandler(wsManager, []string{"*"}),
	}, Middlewares{
		Auth:        middleware.NewAuthMiddleware(sessions, cookieName),
		RateLimiter: limiter,
		Log:         log,
	})

	return &testServer{e: e, stores: stores, files: files, identity: identity}
}

type requestOption func(*http.Request)

func withCookie(value string) requestOption {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: cookieName, Value: value}) }
}

func fromIP(ip string) requestOption {
	return func(r *http.Request) { r.Header.Set(echo.HeaderXRealIP, ip) }
}

func (s *testServer) do(method, path, body string, opts ...requestOption) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestPublicProducts(t *testing.T) {
	s := newTestServer(t)
	s.stores.Put("products", "p1", raw.Document{"name": "Azure", "slug": "azure", "price": 1200.0, "isFeatured": true})
	s.stores.Put("products", "p2", raw.Document{"name": "Hidden", "slug": "hidden", "isActive": false})

	rec := s.do(http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderCacheControl), "s-maxage=300")
	var products []entity.Product
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "£1,200", products[0].Price.DisplayText)

	rec = s.do(http.MethodGet, "/api/products/azure", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/products/hidden", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec).Error.Code)
	assert.Equal(t, "no-store", rec.Header().Get(echo.HeaderCacheControl))
}

func TestPublicReadsDegradeToUnavailable(t *testing.T) {
	s := newTestServer(t)
	s.stores.FailWith("products", errors.Unavailable("deadline exceeded", nil))

	rec := s.do(http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Unable to load products right now", body.Error.Message)

	rec = s.do(http.MethodGet, "/api/homepage", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page))
	assert.Equal(t, "null", string(page["featuredProducts"]["data"]))
	assert.NotEqual(t, "null", string(page["featuredProducts"]["error"]))
	assert.NotEqual(t, "null", string(page["content"]["data"]))
}

func TestCollectionsByType(t *testing.T) {
	s := newTestServer(t)
	s.stores.Put("collections", "c1", raw.Document{"name": "Classic", "slug": "classic", "type": "style"})
	s.stores.Put("products", "p1", raw.Document{"name": "Azure", "collections": []any{"classic"}})

	rec := s.do(http.MethodGet, "/api/collections?type=space", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decode(t, rec).Data))

	rec = s.do(http.MethodGet, "/api/collections/classic", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail handler.CollectionDetail
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &detail))
	assert.Equal(t, "c1", detail.Collection.ID)
	require.Len(t, detail.Products, 1)
	assert.Equal(t, entity.FallbackCollectionImage, detail.Collection.HeroImage)
}

func TestLeadFormsValidateAndRateLimit(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/leads/contact", `{"name":"Ada","email":"not-an-email"}`, fromIP("10.0.0.1"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Contains(t, body.Error.Details, "email")

	for i := 0; i < 2; i++ {
		rec = s.do(http.MethodPost, "/api/leads/contact", `{"name":"Ada","email":"ada@example.com"}`, fromIP("10.0.0.1"))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodPost, "/api/leads/contact", `{"name":"Ada","email":"ada@example.com"}`, fromIP("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	rec = s.do(http.MethodPost, "/api/leads/trade", `{"name":"Bo","email":"bo@example.com","company":"Studio"}`, fromIP("10.0.0.2"))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAdminRoutesRequireAdminSession(t *testing.T) {
	s := newTestServer(t)
	body := `{"name":"Heritage","price":{"amount":900}}`

	rec := s.do(http.MethodPost, "/api/admin/products", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/admin/products", body, withCookie("visitor-cookie"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decode(t, rec).Error.Code)
	rec = s.do(http.MethodGet, "/api/products", "")
	assert.JSONEq(t, `[]`, string(decode(t, rec).Data))

	rec = s.do(http.MethodPost, "/api/admin/products", body, withCookie("admin-cookie"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var product entity.Product
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &product))
	assert.Equal(t, "heritage", product.Slug)

	rec = s.do(http.MethodGet, "/api/products/heritage", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPatch, "/api/admin/products/"+product.ID+"/active", `{"active":false}`, withCookie("admin-cookie"))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/api/products/heritage", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminLeadWorkflow(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/api/leads/contact", `{"name":"Dee","email":"dee@example.com","message":"Hi, \"rug\" fan"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))

	rec = s.do(http.MethodPatch, "/api/admin/leads/"+created.ID+"/status", `{"status":"bogus"}`, withCookie("admin-cookie"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPatch, "/api/admin/leads/"+created.ID+"/status", `{"status":"contacted"}`, withCookie("admin-cookie"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/admin/leads?status=contacted", "", withCookie("admin-cookie"))
	require.Equal(t, http.StatusOK, rec.Code)
	var page response.PaginatedResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page))
	assert.Equal(t, int64(1), page.Total)

	rec = s.do(http.MethodGet, "/api/admin/leads/export", "", withCookie("admin-cookie"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")
	assert.Contains(t, rec.Body.String(), `"Hi, ""rug"" fan"`)

	rec = s.do(http.MethodGet, "/api/admin/leads/ghost", "", withCookie("admin-cookie"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionCookieLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/auth/session", `{"idToken":"visitor-token"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/session", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/session", `{"idToken":"admin-token"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	rec = s.do(http.MethodGet, "/api/auth/session", "", withCookie(cookies[0].Value))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/api/auth/session", "", withCookie(cookies[0].Value))
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)

	rec = s.do(http.MethodGet, "/api/auth/session", "", withCookie(cookies[0].Value))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func multipartFile(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestMoodboardUploadSniffsContent(t *testing.T) {
	s := newTestServer(t)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

	upload := func(name string, content []byte) *httptest.ResponseRecorder {
		body, contentType := multipartFile(t, name, content)
		req := httptest.NewRequest(http.MethodPost, "/api/uploads/moodboard", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)
		return rec
	}

	rec := upload("swatch.png", png)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var file entity.UploadedFile
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &file))
	assert.Equal(t, "image/png", file.ContentType)
	assert.True(t, s.files.Has(file.StorageRef))

	rec = upload("script.png", []byte("#!/bin/sh\necho hi\n"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = upload("huge.png", append(png, bytes.Repeat([]byte{0}, 2048)...))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
