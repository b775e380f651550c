package redissvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// RedisService bundles the shared Redis client and its lock client.
type RedisService struct {
	rdb    *redis.Client
	locker *redislock.Client
}

func NewRedisService(rdb *redis.Client) *RedisService {
	return &RedisService{
		rdb:    rdb,
		locker: redislock.New(rdb),
	}
}

// Connect dials addr and pings it once.
func Connect(ctx context.Context, addr, password string, db int) (*RedisService, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return NewRedisService(rdb), nil
}

func (a *RedisService) Rdb() *redis.Client {
	return a.rdb
}

func (a *RedisService) Close() error {
	return a.rdb.Close()
}

// TryLock obtains key for ttl without retrying. ok is false when another
// holder owns the key.
func (a *RedisService) TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	lock, err := a.locker.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	unlock := func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			return nil
		}
		return err
	}
	return unlock, true, nil
}
