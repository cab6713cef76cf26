package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMediaUploadReturnsOpaqueID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "unsigned_y4c", r.FormValue("upload_preset"))
		require.Equal(t, "payment-proofs", r.FormValue("folder"))

		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		require.Equal(t, "receipt.png", header.Filename)

		w.Write([]byte(`{"public_id":"payment-proofs/abc123","secure_url":"https://media.example/abc123.png"}`))
	}))
	t.Cleanup(srv.Close)

	svc, err := NewMediaService(srv.URL, "unsigned_y4c", "payment-proofs")
	require.NoError(t, err)

	res, err := svc.Upload(context.Background(), "receipt.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, "payment-proofs/abc123", res.PublicID)
	require.Equal(t, "https://media.example/abc123.png", res.URL)
}

func TestMediaUploadAllKeepsSuccesses(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"invalid image"}}`))
			return
		}
		w.Write([]byte(`{"public_id":"ok","secure_url":"https://media.example/ok"}`))
	}))
	t.Cleanup(srv.Close)

	svc, err := NewMediaService(srv.URL, "preset", "")
	require.NoError(t, err)

	results := svc.UploadAll(context.Background(), []NamedFile{
		{Name: "a.png", Content: strings.NewReader("a")},
		{Name: "b.png", Content: strings.NewReader("b")},
		{Name: "c.png", Content: strings.NewReader("c")},
	})

	require.Len(t, results, 3)
	require.Equal(t, "ok", results[0].PublicID)
	require.Empty(t, results[0].Error)
	require.Empty(t, results[1].PublicID, "failed upload carries no identifier")
	require.NotEmpty(t, results[1].Error)
	require.Equal(t, "ok", results[2].PublicID, "a failure must not drop later successes")
}

func TestNewMediaServiceRequiresURL(t *testing.T) {
	_, err := NewMediaService("  ", "preset", "")
	require.Error(t, err)
}
