package backend

import (
	"bytes"
	"testing"
	"time"
)

func newTestStore(ttl time.Duration) (*MemoryStore, *time.Time) {
	store := NewMemoryStore(ttl)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }
	return store, &current
}

func TestMemoryStoreServesFreshEntries(t *testing.T) {
	store, clock := newTestStore(5 * time.Minute)

	store.Set("/api/projects?status=active", []byte(`[{"id":1}]`))

	*clock = clock.Add(4 * time.Minute)
	payload, ok := store.Get("/api/projects?status=active")
	if !ok {
		t.Fatal("expected fresh entry to be served")
	}
	if !bytes.Equal(payload, []byte(`[{"id":1}]`)) {
		t.Fatalf("unexpected payload: %s", payload)
	}
}

func TestMemoryStorePayloadsAreIsolated(t *testing.T) {
	store, _ := newTestStore(5 * time.Minute)

	original := []byte(`[{"id":1}]`)
	store.Set("/api/projects", original)
	original[0] = 'X'

	first, ok := store.Get("/api/projects")
	if !ok {
		t.Fatal("expected entry to be served")
	}
	first[1] = 'Y'

	second, ok := store.Get("/api/projects")
	if !ok {
		t.Fatal("expected entry to be served again")
	}
	if !bytes.Equal(second, []byte(`[{"id":1}]`)) {
		t.Fatalf("stored payload was mutated through an alias: %s", second)
	}
}

func TestMemoryStoreWithholdsStaleEntries(t *testing.T) {
	store, clock := newTestStore(5 * time.Minute)

	store.Set("/api/projects", []byte("old"))
	*clock = clock.Add(5 * time.Minute)

	if _, ok := store.Get("/api/projects"); ok {
		t.Fatal("expected stale entry not to be served")
	}
	if store.Len() != 1 {
		t.Fatal("stale entry must linger, not be evicted")
	}

	// A later store for the same key overwrites the stale entry in place.
	store.Set("/api/projects", []byte("new"))
	payload, ok := store.Get("/api/projects")
	if !ok || string(payload) != "new" {
		t.Fatalf("expected overwritten entry, got %q ok=%v", payload, ok)
	}
	if store.Len() != 1 {
		t.Fatalf("expected a single entry, got %d", store.Len())
	}
}

func TestMemoryStorePrefixInvalidation(t *testing.T) {
	store, _ := newTestStore(5 * time.Minute)

	store.Set("/api/donations", []byte("a"))
	store.Set("/api/donations?status=pending", []byte("b"))
	store.Set("/api/donations/stats", []byte("c"))
	store.Set("/api/donors", []byte("d"))

	store.Invalidate("/api/donations")

	for _, key := range []string{"/api/donations", "/api/donations?status=pending", "/api/donations/stats"} {
		if _, ok := store.Get(key); ok {
			t.Fatalf("expected %s to be invalidated", key)
		}
	}
	if _, ok := store.Get("/api/donors"); !ok {
		t.Fatal("unrelated key must survive prefix invalidation")
	}
}

func TestMemoryStoreClearAll(t *testing.T) {
	store, _ := newTestStore(time.Minute)

	store.Set("/api/settings", []byte("x"))
	store.Set("/api/projects", []byte("y"))

	store.ClearAll()

	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", store.Len())
	}
}

func TestNewMemoryStoreDefaultsTTL(t *testing.T) {
	store := NewMemoryStore(0)
	if store.ttl != DefaultTTL {
		t.Fatalf("expected default TTL, got %s", store.ttl)
	}
}
