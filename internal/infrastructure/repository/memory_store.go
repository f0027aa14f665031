package repository

import (
	"context"
	"sync"
	"time"

	domainRepo "github.com/sangkips/shopflow/internal/domain/repository"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore is a process-local key/value store, used for tests and demos
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

var _ domainRepo.KeyValueStore = (*MemoryStore)(nil)

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(key), nil
}

func (s *MemoryStore) get(key string) []byte {
	e, ok := s.entries[key]
	if !ok || e.expired(time.Now()) {
		return nil
	}
	return append([]byte(nil), e.value...)
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, value, ttl)
	return nil
}

func (s *MemoryStore) set(key string, value []byte, ttl time.Duration) {
	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	s.entries[key] = e
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, keys []string, fn domainRepo.UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if value := s.get(key); value != nil {
			current[key] = value
		}
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	for key, value := range next {
		s.set(key, value, 0)
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
