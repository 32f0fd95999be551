package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore keeps the credentials in process memory. It satisfies Store
// for tests and for embedders that do not want persistence across restarts.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", ErrClosed
	}
	return s.values[key], nil
}

func (s *MemoryStore) set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.values[key] = value
	return nil
}

func (s *MemoryStore) AccessToken(_ context.Context) (string, error) {
	return s.get(KeyAccessToken)
}

func (s *MemoryStore) SetAccessToken(_ context.Context, token string) error {
	return s.set(KeyAccessToken, token)
}

func (s *MemoryStore) RefreshToken(_ context.Context) (string, error) {
	return s.get(KeyRefreshToken)
}

func (s *MemoryStore) SetRefreshToken(_ context.Context, token string) error {
	return s.set(KeyRefreshToken, token)
}

func (s *MemoryStore) UserID(_ context.Context) (string, error) {
	return s.get(KeyUserID)
}

func (s *MemoryStore) SetUserID(_ context.Context, id string) error {
	return s.set(KeyUserID, id)
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.values = make(map[string]string)
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
