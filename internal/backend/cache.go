package backend

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL is the freshness window applied to every cached response.
const DefaultTTL = 5 * time.Minute

// Store is the response cache shared by every read path in the gateway.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the cached payload for key when it is still fresh.
	Get(key string) ([]byte, bool)
	// Set stores payload under key, stamping it with the current time.
	// An existing entry for the key is overwritten.
	Set(key string, payload []byte)
	// Invalidate removes the exact entry for path and every entry whose key
	// starts with path, covering all parameterised variants of a resource.
	Invalidate(path string)
	// ClearAll drops every entry unconditionally.
	ClearAll()
}

type cacheEntry struct {
	payload  []byte
	storedAt time.Time
}

// MemoryStore is an in-memory Store with a fixed TTL. Stale entries are not
// served but also not evicted; they stay until overwritten or invalidated.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewMemoryStore constructs a MemoryStore. A non-positive ttl falls back to
// DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get implements Store.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(entry.storedAt) >= s.ttl {
		// Stale entries linger; the next successful fetch overwrites them.
		return nil, false
	}
	// Hand out a copy so a caller mutating the payload cannot poison later
	// hits for the same key.
	out := make([]byte, len(entry.payload))
	copy(out, entry.payload)
	return out, true
}

// Set implements Store.
func (s *MemoryStore) Set(key string, payload []byte) {
	stored := make([]byte, len(payload))
	copy(stored, payload)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = cacheEntry{payload: stored, storedAt: s.now()}
}

// Invalidate implements Store.
func (s *MemoryStore) Invalidate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		if key == path || strings.HasPrefix(key, path) {
			delete(s.entries, key)
		}
	}
}

// ClearAll implements Store.
func (s *MemoryStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]cacheEntry)
}

// Len reports the number of stored entries, fresh or stale.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
