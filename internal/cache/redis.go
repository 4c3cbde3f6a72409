package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

// RedisStore keeps cache entries in Redis so every API instance sees the same
// generations and evictions.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisStore returns a RedisStore whose keys all start with prefix.
func NewRedisStore(rdb redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisStore) generationKey(ns Namespace) string {
	return s.prefix + ":gen:" + string(ns)
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.key(key), value, ttl).Err()
}

func (s *RedisStore) Generation(ctx context.Context, ns Namespace) (uint64, error) {
	v, err := s.rdb.Get(ctx, s.generationKey(ns)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	gen, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse generation of %s: %w", ns, err)
	}
	return gen, nil
}

// EvictNamespace bumps the generation, then removes the stale entries.
func (s *RedisStore) EvictNamespace(ctx context.Context, ns Namespace) error {
	if err := s.rdb.Incr(ctx, s.generationKey(ns)).Err(); err != nil {
		return err
	}
	iter := s.rdb.Scan(ctx, 0, s.key(string(ns))+":*", scanBatch).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
