package handler_test

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shortlink/internal/handler"
	"shortlink/internal/handler/mocks"
	"shortlink/internal/link"
	"shortlink/internal/validation"
)

func newTestHandler(t *testing.T) (*handler.Handler, *mocks.MockLinkService, *mocks.MockURLValidator) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	svc := mocks.NewMockLinkService(t)
	val := mocks.NewMockURLValidator(t)
	h := handler.New(svc, val, logger, nil)
	return h, svc, val
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func codeContext(req *http.Request, code string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("code")
	c.SetParamValues(code)
	return c, rec
}

// Shorten tests

func TestShorten_PlainBody(t *testing.T) {
	h, svc, val := newTestHandler(t)

	val.EXPECT().ValidateURL("https://example.com/page").Return(nil)
	svc.EXPECT().Shorten(mock.Anything, "https://example.com/page", link.Options{}).
		Return(&link.ShortLink{Code: "abc123", TargetURL: "https://example.com/page"}, nil)
	svc.EXPECT().ShortURL("abc123").Return("http://sho.rt/abc123")

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/shorten", `{"url":"https://example.com/page"}`), rec)

	require.NoError(t, h.Shorten(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"shortUrl":"http://sho.rt/abc123"}`, rec.Body.String())
}

func TestShorten_ExtendedBody(t *testing.T) {
	h, svc, val := newTestHandler(t)
	expiresAt := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	limit := int64(3)

	val.EXPECT().ValidateURL("https://example.com").Return(nil)
	svc.EXPECT().Shorten(mock.Anything, "https://example.com", link.Options{
		CustomAlias: "promo",
		ExpiresAt:   &expiresAt,
		Password:    "pw",
		ClickLimit:  &limit,
	}).Return(&link.ShortLink{Code: "promo", ExpiresAt: &expiresAt}, nil)
	svc.EXPECT().ShortURL("promo").Return("http://sho.rt/promo")

	body := `{"originalUrl":"https://example.com","customAlias":"promo","expiresAt":"2030-01-02T03:04:05Z","password":"pw","clickLimit":3}`
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/shorten", body), rec)

	require.NoError(t, h.Shorten(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"shortUrl":"http://sho.rt/promo","expiresAt":"2030-01-02T03:04:05Z"}`, rec.Body.String())
}

func TestShorten_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"alias taken", link.ErrAliasTaken, http.StatusBadRequest, "custom alias already in use"},
		{"invalid alias", link.ErrInvalidAlias, http.StatusBadRequest, "custom alias must be"},
		{"invalid expiry", link.ErrInvalidExpiry, http.StatusBadRequest, "expiresAt must be in the future"},
		{"invalid click limit", link.ErrInvalidClickLimit, http.StatusBadRequest, "clickLimit must not be negative"},
		{"invalid url", link.ErrInvalidURL, http.StatusBadRequest, "invalid url format"},
		{"storage", errors.Join(link.ErrStorage, errors.New("dial tcp: refused")), http.StatusInternalServerError, "failed to create short url"},
		{"exhausted", link.ErrAllocationExhausted, http.StatusInternalServerError, "failed to create short url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc, val := newTestHandler(t)

			val.EXPECT().ValidateURL("https://example.com").Return(nil)
			svc.EXPECT().Shorten(mock.Anything, "https://example.com", mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			c := echo.New().NewContext(jsonRequest(http.MethodPost, "/shorten", `{"url":"https://example.com"}`), rec)

			require.NoError(t, h.Shorten(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NotContains(t, rec.Body.String(), "refused")
		})
	}
}

func TestShorten_ValidationError(t *testing.T) {
	tests := []struct {
		url  string
		err  error
		want string
	}{
		{"http://10.0.0.1/admin", validation.ErrPrivateIPNotAllowed, "private ip addresses not allowed"},
		{"https://bank.example@evil.example/", validation.ErrCredentialsInURL, "url must not contain credentials"},
		{"https://sho.rt/abc", validation.ErrSelfReference, "url points to this service"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			h, _, val := newTestHandler(t)
			val.EXPECT().ValidateURL(tt.url).Return(tt.err)

			rec := httptest.NewRecorder()
			c := echo.New().NewContext(jsonRequest(http.MethodPost, "/shorten", `{"url":"`+tt.url+`"}`), rec)

			require.NoError(t, h.Shorten(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestShorten_InvalidJSON(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/shorten", `{"url":`), rec)

	require.NoError(t, h.Shorten(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// CreateURL tests

func TestCreateURL_Success(t *testing.T) {
	h, svc, val := newTestHandler(t)

	val.EXPECT().ValidateURL("https://example.com").Return(nil)
	svc.EXPECT().Shorten(mock.Anything, "https://example.com", link.Options{}).
		Return(&link.ShortLink{Code: "xyz789", TargetURL: "https://example.com"}, nil)
	svc.EXPECT().ShortURL("xyz789").Return("http://short.url/xyz789")

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/api/v1/urls", `{"url":"https://example.com"}`), rec)

	require.NoError(t, h.CreateURL(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t,
		`{"short_code":"xyz789","short_url":"http://short.url/xyz789","original_url":"https://example.com"}`,
		rec.Body.String())
}

func TestCreateURL_EmptyURL(t *testing.T) {
	h, _, val := newTestHandler(t)

	val.EXPECT().ValidateURL("").Return(validation.ErrEmptyURL)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/api/v1/urls", `{"url":""}`), rec)

	require.NoError(t, h.CreateURL(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "url is required")
}

func TestCreateURL_ServiceError(t *testing.T) {
	h, svc, val := newTestHandler(t)

	val.EXPECT().ValidateURL("https://example.com").Return(nil)
	svc.EXPECT().Shorten(mock.Anything, "https://example.com", link.Options{}).Return(nil, errors.New("db error"))

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/api/v1/urls", `{"url":"https://example.com"}`), rec)

	require.NoError(t, h.CreateURL(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// CreateURLBatch tests

func TestCreateURLBatch_Success(t *testing.T) {
	h, svc, val := newTestHandler(t)
	urls := []string{"https://example.com/1", "https://example.com/2"}

	val.EXPECT().ValidateBatch(urls).Return(nil)
	svc.EXPECT().ShortenBatch(mock.Anything, urls).Return([]*link.ShortLink{
		{Code: "code0", TargetURL: urls[0]},
		{Code: "code1", TargetURL: urls[1]},
	}, nil)
	svc.EXPECT().ShortURL(mock.Anything).RunAndReturn(func(code string) string {
		return "http://short.url/" + code
	})

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/api/v1/urls/batch",
		`{"urls":["https://example.com/1","https://example.com/2"]}`), rec)

	require.NoError(t, h.CreateURLBatch(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"urls":[
		{"short_code":"code0","short_url":"http://short.url/code0","original_url":"https://example.com/1"},
		{"short_code":"code1","short_url":"http://short.url/code1","original_url":"https://example.com/2"}
	]}`, rec.Body.String())
}

func TestCreateURLBatch_EmptyBatch(t *testing.T) {
	h, _, val := newTestHandler(t)

	val.EXPECT().ValidateBatch([]string{}).Return(validation.ErrEmptyBatch)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/api/v1/urls/batch", `{"urls":[]}`), rec)

	require.NoError(t, h.CreateURLBatch(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "urls is required")
}

func TestCreateURLBatch_BatchValidationError(t *testing.T) {
	h, _, val := newTestHandler(t)

	val.EXPECT().ValidateBatch([]string{"https://example.com", "javascript:alert(1)"}).
		Return(&validation.BatchValidationError{
			Errors: []validation.IndexedError{
				{Index: 1, Err: validation.ErrUnsafeProtocol},
			},
		})

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/api/v1/urls/batch",
		`{"urls":["https://example.com","javascript:alert(1)"]}`), rec)

	require.NoError(t, h.CreateURLBatch(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":[{"index":1,"error":"url protocol not allowed"}]}`, rec.Body.String())
}

func TestCreateURLBatch_ServiceError(t *testing.T) {
	h, svc, val := newTestHandler(t)
	urls := []string{"https://example.com/1"}

	val.EXPECT().ValidateBatch(urls).Return(nil)
	svc.EXPECT().ShortenBatch(mock.Anything, urls).Return(nil, errors.New("db error"))

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/api/v1/urls/batch", `{"urls":["https://example.com/1"]}`), rec)

	require.NoError(t, h.CreateURLBatch(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// Redirect tests

func TestRedirect_Verdicts(t *testing.T) {
	tests := []struct {
		name       string
		res        link.Resolution
		wantStatus int
	}{
		{"found", link.Resolution{Verdict: link.VerdictFound, TargetURL: "https://example.com"}, http.StatusMovedPermanently},
		{"not found", link.Resolution{Verdict: link.VerdictNotFound}, http.StatusNotFound},
		{"expired", link.Resolution{Verdict: link.VerdictExpired}, http.StatusNotFound},
		{"inactive", link.Resolution{Verdict: link.VerdictInactive}, http.StatusNotFound},
		{"limit exhausted", link.Resolution{Verdict: link.VerdictLimitExhausted}, http.StatusNotFound},
		{"password required", link.Resolution{Verdict: link.VerdictPasswordRequired}, http.StatusUnauthorized},
		{"password mismatch", link.Resolution{Verdict: link.VerdictPasswordMismatch}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc, _ := newTestHandler(t)
			svc.EXPECT().Resolve(mock.Anything, "abc123", "").Return(tt.res, nil)

			c, rec := codeContext(httptest.NewRequest(http.MethodGet, "/abc123", nil), "abc123")

			require.NoError(t, h.Redirect(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusMovedPermanently {
				assert.Equal(t, "https://example.com", rec.Header().Get(echo.HeaderLocation))
				assert.Equal(t, "private, no-store", rec.Header().Get("Cache-Control"))
			} else {
				assert.Empty(t, rec.Header().Get(echo.HeaderLocation))
			}
		})
	}
}

func TestRedirect_PasswordSources(t *testing.T) {
	t.Run("header", func(t *testing.T) {
		h, svc, _ := newTestHandler(t)
		svc.EXPECT().Resolve(mock.Anything, "abc123", "from-header").
			Return(link.Resolution{Verdict: link.VerdictFound, TargetURL: "https://example.com"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/abc123?password=from-query", nil)
		req.Header.Set("X-Link-Password", "from-header")
		c, rec := codeContext(req, "abc123")

		require.NoError(t, h.Redirect(c))
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	})

	t.Run("query", func(t *testing.T) {
		h, svc, _ := newTestHandler(t)
		svc.EXPECT().Resolve(mock.Anything, "abc123", "from-query").
			Return(link.Resolution{Verdict: link.VerdictFound, TargetURL: "https://example.com"}, nil)

		c, rec := codeContext(httptest.NewRequest(http.MethodGet, "/abc123?password=from-query", nil), "abc123")

		require.NoError(t, h.Redirect(c))
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	})
}

func TestRedirect_StorageErrorHidesDetail(t *testing.T) {
	h, svc, _ := newTestHandler(t)
	svc.EXPECT().Resolve(mock.Anything, "abc123", "").
		Return(link.Resolution{}, errors.New("storage error: get: dial tcp 10.0.0.5:6379"))

	c, rec := codeContext(httptest.NewRequest(http.MethodGet, "/abc123", nil), "abc123")

	require.NoError(t, h.Redirect(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestRedirect_EmptyCode(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c, rec := codeContext(httptest.NewRequest(http.MethodGet, "/", nil), "")

	require.NoError(t, h.Redirect(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Admin tests

func TestGetLink(t *testing.T) {
	h, svc, _ := newTestHandler(t)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limit := int64(4)

	svc.EXPECT().Inspect(mock.Anything, "abc123").Return(&link.ShortLink{
		Code:         "abc123",
		TargetURL:    "https://example.com",
		CreatedAt:    created,
		PasswordHash: "$argon2id$secret",
		ClickLimit:   &limit,
		IsActive:     true,
	}, nil)
	svc.EXPECT().ShortURL("abc123").Return("http://sho.rt/abc123")

	c, rec := codeContext(httptest.NewRequest(http.MethodGet, "/api/v1/links/abc123", nil), "abc123")

	require.NoError(t, h.GetLink(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"short_code":"abc123",
		"short_url":"http://sho.rt/abc123",
		"original_url":"https://example.com",
		"created_at":"2025-01-01T00:00:00Z",
		"click_limit":4,
		"is_active":true,
		"protected":true
	}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "argon2id")
}

func TestGetLink_NotFound(t *testing.T) {
	h, svc, _ := newTestHandler(t)
	svc.EXPECT().Inspect(mock.Anything, "nope").Return(nil, link.ErrNotFound)

	c, rec := codeContext(httptest.NewRequest(http.MethodGet, "/api/v1/links/nope", nil), "nope")

	require.NoError(t, h.GetLink(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteLink(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"missing", link.ErrNotFound, http.StatusNotFound},
		{"storage", errors.New("timeout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc, _ := newTestHandler(t)
			svc.EXPECT().Delete(mock.Anything, "abc123").Return(tt.err)

			c, rec := codeContext(httptest.NewRequest(http.MethodDelete, "/api/v1/links/abc123", nil), "abc123")

			require.NoError(t, h.DeleteLink(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestDeactivateLink(t *testing.T) {
	h, svc, _ := newTestHandler(t)
	svc.EXPECT().Deactivate(mock.Anything, "abc123").
		Return(&link.ShortLink{Code: "abc123", TargetURL: "https://example.com"}, nil)
	svc.EXPECT().ShortURL("abc123").Return("http://sho.rt/abc123")

	c, rec := codeContext(httptest.NewRequest(http.MethodPost, "/api/v1/links/abc123/deactivate", nil), "abc123")

	require.NoError(t, h.DeactivateLink(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_active":false`)
}

// Routing tests

func TestRoutes(t *testing.T) {
	h, svc, _ := newTestHandler(t)
	e := echo.New()
	h.Register(e)

	svc.EXPECT().Resolve(mock.Anything, "abc123", "").
		Return(link.Resolution{Verdict: link.VerdictFound, TargetURL: "https://example.com"}, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/abc123", nil))
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
}

func TestHealth_StoreDown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	pinger := mocks.NewMockPinger(t)
	pinger.EXPECT().Ping(mock.Anything).Return(errors.New("connection refused"))

	h := handler.New(mocks.NewMockLinkService(t), mocks.NewMockURLValidator(t), logger, pinger)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), rec)

	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
