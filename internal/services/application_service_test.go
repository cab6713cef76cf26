package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/youths4change/webgate/internal/backend"
	"github.com/youths4change/webgate/internal/models"
	apperrors "github.com/youths4change/webgate/pkg/errors"
)

func motivation(words int) string {
	return strings.TrimSpace(strings.Repeat("change ", words))
}

func validApplication() models.ApplicationRequest {
	return models.ApplicationRequest{
		FullName:   "Kwame Asante",
		Email:      "kwame@example.com",
		Phone:      "+233201234567",
		Country:    "Ghana",
		Motivation: motivation(120),
	}
}

func TestValidateMotivationBounds(t *testing.T) {
	require.Error(t, ValidateMotivation(motivation(99)))
	require.NoError(t, ValidateMotivation(motivation(100)))
	require.NoError(t, ValidateMotivation(motivation(500)))
	require.Error(t, ValidateMotivation(motivation(501)))

	err := ValidateMotivation(motivation(10))
	require.Equal(t, "Motivation must be at least 100 words (current: 10)", apperrors.FromError(err).Message)
}

func TestApplicationSubmitInvalidatesListings(t *testing.T) {
	var posts int64
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/applications", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&posts, 1)
		w.Write([]byte(`{"success":true,"data":{"id":17}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := backend.NewMemoryStore(5 * time.Minute)
	client, err := backend.New(srv.URL, store)
	require.NoError(t, err)

	store.Set("/api/applications", []byte("stale"))
	store.Set("/api/applications?status=pending", []byte("stale"))

	svc, err := NewApplicationService(client)
	require.NoError(t, err)

	id, err := svc.Submit(context.Background(), validApplication())
	require.NoError(t, err)
	require.Equal(t, 17, id)
	require.EqualValues(t, 1, atomic.LoadInt64(&posts))

	for _, key := range []string{"/api/applications", "/api/applications?status=pending"} {
		if _, ok := store.Get(key); ok {
			t.Fatalf("expected %s to be invalidated", key)
		}
	}
}

func TestApplicationSubmitRejectsBadInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid applications must never reach the backend")
	}))
	t.Cleanup(srv.Close)

	client, err := backend.New(srv.URL, backend.NewMemoryStore(time.Minute))
	require.NoError(t, err)
	svc, err := NewApplicationService(client)
	require.NoError(t, err)

	short := validApplication()
	short.Motivation = motivation(50)
	_, err = svc.Submit(context.Background(), short)
	require.Error(t, err)

	badEmail := validApplication()
	badEmail.Email = "not-an-email"
	_, err = svc.Submit(context.Background(), badEmail)
	require.Error(t, err)

	badCountry := validApplication()
	badCountry.Country = "Atlantis"
	_, err = svc.Submit(context.Background(), badCountry)
	require.Error(t, err)
}

func TestApplicationReviewValidatesStatus(t *testing.T) {
	client, err := backend.New("http://127.0.0.1:1", backend.NewMemoryStore(time.Minute))
	require.NoError(t, err)
	svc, err := NewApplicationService(client)
	require.NoError(t, err)

	err = svc.Review(context.Background(), 4, "maybe")
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, apperrors.FromError(err).StatusCode)
}
