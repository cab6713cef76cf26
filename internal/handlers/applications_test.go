package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/youths4change/webgate/internal/backend"
	"github.com/youths4change/webgate/internal/services"
)

func newApplicationRouter(t *testing.T) (*gin.Engine, *int) {
	t.Helper()

	posts := 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/applications", func(w http.ResponseWriter, r *http.Request) {
		posts++
		w.Write([]byte(`{"success":true,"data":{"id":9}}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := backend.New(srv.URL, backend.NewMemoryStore(backend.DefaultTTL))
	require.NoError(t, err)

	applications, err := services.NewApplicationService(client)
	require.NoError(t, err)

	handler, err := NewApplicationHandler(applications)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/applications", handler.Submit)
	r.POST("/api/applications/word-count", handler.MotivationWordCount)
	return r, &posts
}

func validApplicationBody(t *testing.T) string {
	t.Helper()

	payload := map[string]string{
		"full_name":  "Kwame Boateng",
		"email":      "kwame@example.com",
		"phone":      "+233244000000",
		"country":    "Ghana",
		"motivation": strings.Repeat("word ", 120),
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return string(raw)
}

func TestApplicationSubmit(t *testing.T) {
	r, posts := newApplicationRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(validApplicationBody(t)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 1, *posts)
	require.Contains(t, rec.Body.String(), `"id":9`)
}

func TestApplicationSubmitRejectsShortMotivation(t *testing.T) {
	r, posts := newApplicationRouter(t)

	body := `{"full_name":"Kwame Boateng","email":"kwame@example.com","phone":"+233244000000","country":"Ghana","motivation":"too short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "at least 100 words")
	require.Equal(t, 0, *posts)
}

func TestMotivationWordCount(t *testing.T) {
	r, _ := newApplicationRouter(t)

	body := `{"motivation":"` + strings.TrimSpace(strings.Repeat("word ", 150)) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/applications/word-count", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"words":150`)
	require.Contains(t, rec.Body.String(), `"valid":true`)
}
