package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store with per-key expiry. It backs tests and
// redis-less deployments; expired entries are dropped lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type MemoryOption func(*MemoryStore)

// WithNowFunc overrides the time source, so tests can control expiry.
func WithNowFunc(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.live(key)
	if !ok {
		return nil, false, nil
	}
	return ent.value, true, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{value: value, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) SetIfAbsent(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.live(key); ok {
		return false, nil
	}
	s.entries[key] = memoryEntry{value: value, expiresAt: s.now().Add(ttl)}
	return true, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// live returns the entry for key if it has not expired, dropping it otherwise.
// Callers must hold s.mu.
func (s *MemoryStore) live(key string) (memoryEntry, bool) {
	ent, ok := s.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !ent.expiresAt.After(s.now()) {
		delete(s.entries, key)
		return memoryEntry{}, false
	}
	return ent, true
}
