package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps window counters in Redis so that multiple instances share
// one quota. Keys expire shortly after their window ends, so no sweep is
// needed.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore wraps a connected client.
func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "ratelimit:"
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	values, err := s.client.HGetAll(ctx, s.keyPrefix+key).Result()
	if err != nil {
		return Entry{}, false, err
	}
	if len(values) == 0 {
		return Entry{}, false, nil
	}
	count, err := strconv.Atoi(values["count"])
	if err != nil {
		return Entry{}, false, err
	}
	resetMs, err := strconv.ParseInt(values["reset_at_ms"], 10, 64)
	if err != nil {
		return Entry{}, false, err
	}
	return Entry{Count: count, ResetAt: time.UnixMilli(resetMs)}, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, entry Entry) error {
	full := s.keyPrefix + key
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, full,
		"count", entry.Count,
		"reset_at_ms", entry.ResetAt.UnixMilli(),
	)
	// Keep the key one minute past its window so in-flight reads still see it.
	pipe.PExpireAt(ctx, full, entry.ResetAt.Add(time.Minute))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.keyPrefix+key).Err()
}
