package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	ratelimiter "authflow/internal/core/domain/rate_limiter"

	"github.com/go-redis/redis/v9"
)

const keyPrefix = "authflow::rate-limit::"

// Redis counts calls per key in fixed windows aligned to the wall clock.
// Redis failures fail open.
type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
	now         func() time.Time
}

func NewRedis(redisClient *redis.Client, log logging.Logger, now func() time.Time) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Redis{redisClient: redisClient, log: log, now: now}
}

func (r *Redis) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	k, ttl := r.windowKey(key, limit.Interval)

	cmds, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, ttl)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return ratelimiter.NotAllowed()
	}
	if err != nil {
		r.log.Error(ctx, "Could not check rate limit due to Redis client error.", logging.Entry("err", err))
		return ratelimiter.Allowed()
	}
	count := cmds[0].(*redis.IntCmd).Val()
	if count > int64(limit.Value) {
		return ratelimiter.NotAllowed()
	}
	return ratelimiter.Allowed()
}

func (r *Redis) windowKey(key string, interval ratelimiter.Interval) (string, time.Duration) {
	now := r.now().UTC()
	switch interval {
	case ratelimiter.Hour:
		return fmt.Sprintf("%s%s::h%s", keyPrefix, key, now.Format("2006010215")), time.Hour
	case ratelimiter.Minute:
		return fmt.Sprintf("%s%s::m%s", keyPrefix, key, now.Format("200601021504")), time.Minute
	default:
		panic("invalid rate limiting interval")
	}
}
