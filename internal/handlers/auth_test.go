package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/youths4change/webgate/internal/backend"
	"github.com/youths4change/webgate/internal/services"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *backend.MemoryStore) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Set-Cookie", "session=abc123; HttpOnly; Path=/")
		w.Write([]byte(`{"success":true,"data":{"username":"efua"}}`))
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("PUT /api/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"error":"Not authenticated"}`))
			return
		}
		w.Write([]byte(`{"success":true,"data":{"full_name":"Efua Owusu"}}`))
	})
	mux.HandleFunc("PUT /api/auth/password", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"Password updated"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := backend.NewMemoryStore(backend.DefaultTTL)
	client, err := backend.New(srv.URL, store)
	require.NoError(t, err)

	auth, err := services.NewAuthService(client)
	require.NoError(t, err)

	handler, err := NewAuthHandler(auth)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", handler.Logout)
	r.PUT("/api/admin/profile", handler.UpdateProfile)
	r.PUT("/api/admin/password", handler.ChangePassword)
	return r, store
}

func TestLoginRelaysSetCookie(t *testing.T) {
	r, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"efua","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Set-Cookie"), "session=abc123")
	require.Contains(t, rec.Body.String(), "efua")
}

func TestUpdateProfileRelaysCookieAndBody(t *testing.T) {
	r, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/profile", strings.NewReader(`{"full_name":"Efua Owusu","email":"efua@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", "session=abc123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Efua Owusu")
}

func TestUpdateProfileWithoutSessionIsRejectedUpstream(t *testing.T) {
	r, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/profile", strings.NewReader(`{"full_name":"Efua Owusu"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePasswordRelaysBackendVerdict(t *testing.T) {
	r, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/password", strings.NewReader(`{"current_password":"old","new_password":"new"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", "session=abc123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Password updated")
}

func TestLogoutClearsCache(t *testing.T) {
	r, store := newAuthRouter(t)

	store.Set(backend.CacheKey("/api/projects", nil), []byte(`{"success":true}`))
	require.Equal(t, 1, store.Len())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Cookie", "session=abc123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 0, store.Len())
}
