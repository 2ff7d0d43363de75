package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// Result - итог проверки лимита
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter ограничивает число действий по ключу за окно
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// RedisLimiter - фиксированное окно на INCR + EXPIRE NX
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	if l.limit <= 0 {
		return Result{Allowed: true}, nil
	}

	redisKey := keyPrefix + key

	// INCR и EXPIRE NX уходят одной транзакцией, счетчик без TTL не остается
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, l.window)
		ttl = pipe.TTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to update rate limit counter: %w", err)
	}

	count := incr.Val()
	var retryAfter time.Duration
	if count > int64(l.limit) {
		retryAfter = ttl.Val()
	}

	return evaluate(int(count), l.limit, retryAfter, l.window), nil
}

// evaluate переводит значение счетчика в решение
func evaluate(count, limit int, ttl, window time.Duration) Result {
	if ttl <= 0 {
		ttl = window
	}
	if count > limit {
		return Result{Allowed: false, Remaining: 0, RetryAfter: ttl}
	}
	return Result{Allowed: true, Remaining: limit - count}
}
