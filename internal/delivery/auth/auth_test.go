package auth

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"prodtrack/internal/repository"
	authUC "prodtrack/internal/usecase/auth"
)

func newHandler(t *testing.T) *AuthHandler {
	t.Helper()
	store, err := repository.NewFileUserStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	uc := authUC.NewUserUsecaseHandler(store, repository.NewSessionMapStorage(), time.Now)
	return NewAuthHandler(uc, zap.NewNop().Sugar(), time.Hour, false)
}

func post(h http.HandlerFunc, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func sessionFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestRegisterLoginLogout(t *testing.T) {
	h := newHandler(t)

	rec := post(h.Register, `{"email":"ann@x.io","password":"pw","name":"Ann"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionFrom(t, rec)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	assert.Equal(t, "ann@x.io", h.GetUserID(httptest.NewRecorder(), req))

	rec = post(h.Register, `{"email":"ann@x.io","password":"pw"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = post(h.Login, `{"email":"ann@x.io","password":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(h.Login, `{"email":"ANN@x.io","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	loginCookie := sessionFrom(t, rec)

	rec = post(h.Logout, "", loginCookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = post(h.Logout, "", loginCookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserIDWithoutSession(t *testing.T) {
	h := newHandler(t)

	rec := httptest.NewRecorder()
	assert.Empty(t, h.GetUserID(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "stale"})
	rec = httptest.NewRecorder()
	assert.Empty(t, h.GetUserID(rec, req))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMalformedBody(t *testing.T) {
	h := newHandler(t)
	rec := post(h.Login, `{"email":"ann@x.io","unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
