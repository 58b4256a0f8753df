package credentials

import (
	"context"
	"sync"
	"time"
)

// Store persists the orchestrator bearer token for the current console session.
//
// Token returns an empty string (and no error) when nothing is stored or the
// stored token has expired.
type Store interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the token in process memory. It is the default when no
// Redis is configured, and what tests use.
type MemoryStore struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	clock     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{clock: time.Now}
}

func (s *MemoryStore) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", nil
	}
	if !s.expiresAt.IsZero() && !s.clock().Before(s.expiresAt) {
		s.token = ""
		s.expiresAt = time.Time{}
		return "", nil
	}
	return s.token, nil
}

func (s *MemoryStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	info, _ := Inspect(token)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = info.ExpiresAt
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
	return nil
}
