package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/youths4change/webgate/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler, ttl time.Duration) (*Client, *MemoryStore, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := NewMemoryStore(ttl)
	client, err := New(srv.URL, store)
	require.NoError(t, err)
	return client, store, srv
}

func TestGetCachesSuccessfulReads(t *testing.T) {
	var calls int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Clean Water"}]}`))
	})
	client, _, _ := newTestClient(t, handler, 5*time.Minute)

	params := url.Values{}
	params.Set("status", "active")

	first, err := client.Get(context.Background(), "/api/projects", params)
	require.NoError(t, err)

	second, err := client.Get(context.Background(), "/api/projects", params)
	require.NoError(t, err)

	require.Equal(t, first, second, "cached payload must match byte for byte")
	require.EqualValues(t, 1, atomic.LoadInt64(&calls), "second read within TTL must not hit the network")
}

func TestGetRefetchesAfterExpiry(t *testing.T) {
	var calls int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"success":true}`))
	})
	client, store, _ := newTestClient(t, handler, 5*time.Minute)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	_, err := client.Get(context.Background(), "/api/settings", nil)
	require.NoError(t, err)

	current = current.Add(5*time.Minute + time.Second)

	_, err = client.Get(context.Background(), "/api/settings", nil)
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt64(&calls), "expired entry must trigger a refetch")
}

func TestGetDoesNotCacheFailures(t *testing.T) {
	var calls int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&calls, 1)
		if n == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"database unavailable"}`))
			return
		}
		w.Write([]byte(`{"success":true}`))
	})
	client, store, _ := newTestClient(t, handler, 5*time.Minute)

	_, err := client.Get(context.Background(), "/api/projects", nil)
	require.Error(t, err)
	require.Equal(t, 0, store.Len(), "failed reads must not populate the cache")

	appErr := apperrors.FromError(err)
	require.Equal(t, "database unavailable", appErr.Message, "backend message surfaces verbatim")

	_, err = client.Get(context.Background(), "/api/projects", nil)
	require.NoError(t, err, "next call for the same key retries against the network")
	require.EqualValues(t, 2, atomic.LoadInt64(&calls))
}

func TestGetStableKeyAcrossParamOrder(t *testing.T) {
	var calls int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"success":true}`))
	})
	client, _, _ := newTestClient(t, handler, 5*time.Minute)

	a := url.Values{}
	a.Set("country", "Ghana")
	a.Set("status", "active")

	b := url.Values{}
	b.Set("status", "active")
	b.Set("country", "Ghana")

	_, err := client.Get(context.Background(), "/api/projects", a)
	require.NoError(t, err)
	_, err = client.Get(context.Background(), "/api/projects", b)
	require.NoError(t, err)

	require.EqualValues(t, 1, atomic.LoadInt64(&calls), "equivalent params must share one cache entry")
}

func TestPostBypassesCacheAndSurfacesErrors(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Minimum donation is 1.00"}`))
	})
	client, store, _ := newTestClient(t, handler, 5*time.Minute)

	_, err := client.Post(context.Background(), "/api/donations", map[string]any{"amount": 0.5})
	require.Error(t, err)
	require.Equal(t, 0, store.Len())

	appErr := apperrors.FromError(err)
	require.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	require.Equal(t, "Minimum donation is 1.00", appErr.Message)
}

func TestSessionCookieForwarding(t *testing.T) {
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Cookie")
		w.Write([]byte(`{"success":true}`))
	})
	client, _, _ := newTestClient(t, handler, 5*time.Minute)

	ctx := WithSessionCookie(context.Background(), "session=abc123")
	_, err := client.Get(ctx, "/api/donations", nil)
	require.NoError(t, err)
	require.Equal(t, "session=abc123", seen)
}

func TestTransportErrorsAreNeverCached(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	client, err := New("http://127.0.0.1:1", store, WithTimeout(200*time.Millisecond))
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/api/projects", nil)
	require.Error(t, err)
	require.Equal(t, 0, store.Len())
}

func TestDecodeData(t *testing.T) {
	var projects []struct {
		ID int `json:"id"`
	}
	err := DecodeData([]byte(`{"success":true,"data":[{"id":3}]}`), &projects)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, 3, projects[0].ID)

	err = DecodeData([]byte(`{"success":false,"error":"nope"}`), &projects)
	require.Error(t, err)
	require.Equal(t, "nope", apperrors.FromError(err).Message)
}

func TestCacheKey(t *testing.T) {
	require.Equal(t, "/api/projects", CacheKey("/api/projects", nil))

	params := url.Values{}
	params.Set("b", "2")
	params.Set("a", "1")
	require.Equal(t, "/api/projects?a=1&b=2", CacheKey("/api/projects", params))
}
