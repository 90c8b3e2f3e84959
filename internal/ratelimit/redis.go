package ratelimit

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
)

// RedisStore backs the limiter with a shared redis instance so replicas
// enforce one quota. The counter key expires with the window, so redis does
// the sweeping for us.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Allow(ctx context.Context, key string, quota Quota) (Result, error) {
	redisKey := "ratelimit:" + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Result{}, err
	}

	if count == 1 {
		if err := s.client.PExpire(ctx, redisKey, quota.Window).Err(); err != nil {
			return Result{}, err
		}
	}

	resetIn, err := s.client.PTTL(ctx, redisKey).Result()
	if err != nil || resetIn < 0 {
		resetIn = quota.Window
	}

	if int(count) > quota.MaxRequests {
		return Result{Allowed: false, Remaining: 0, ResetIn: resetIn}, nil
	}

	return Result{
		Allowed:   true,
		Remaining: quota.MaxRequests - int(count),
		ResetIn:   resetIn,
	}, nil
}

// NewStore picks the backend: redis when a URL is configured, otherwise the
// in-process map.
func NewStore(redisURL string) Store {
	if redisURL == "" {
		return NewMemoryStore()
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL, using in-memory rate limit store: %v", err)
		return NewMemoryStore()
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unreachable, using in-memory rate limit store: %v", err)
		return NewMemoryStore()
	}

	return NewRedisStore(client)
}
