package auth

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshStore remembers the ids of issued refresh tokens until they expire.
type RefreshStore interface {
	Save(ctx context.Context, jti string, userID int, ttl time.Duration) error
	Exists(ctx context.Context, jti string) (bool, error)
}

const refreshKeyPrefix = "auth:refresh:"

type RedisRefreshStore struct {
	rdb *redis.Client
}

func NewRedisRefreshStore(rdb *redis.Client) *RedisRefreshStore {
	return &RedisRefreshStore{rdb: rdb}
}

func (s *RedisRefreshStore) Save(ctx context.Context, jti string, userID int, ttl time.Duration) error {
	return s.rdb.Set(ctx, refreshKeyPrefix+jti, strconv.Itoa(userID), ttl).Err()
}

func (s *RedisRefreshStore) Exists(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, refreshKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type refreshEntry struct {
	userID    int
	expiresAt time.Time
}

// InMemoryRefreshStore is used when no Redis is configured and in tests.
type InMemoryRefreshStore struct {
	mu      sync.Mutex
	entries map[string]refreshEntry
	now     func() time.Time
}

func NewInMemoryRefreshStore() *InMemoryRefreshStore {
	return &InMemoryRefreshStore{
		entries: map[string]refreshEntry{},
		now:     time.Now,
	}
}

func (s *InMemoryRefreshStore) Save(_ context.Context, jti string, userID int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[jti] = refreshEntry{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *InMemoryRefreshStore) Exists(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[jti]
	return ok && s.now().Before(e.expiresAt), nil
}

// Cleanup drops expired entries.
func (s *InMemoryRefreshStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for jti, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, jti)
		}
	}
}

// StartCleaner runs Cleanup on every interval until ctx is done.
func (s *InMemoryRefreshStore) StartCleaner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}
