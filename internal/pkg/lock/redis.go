package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const unlockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisLocker holds `SET NX PX` locks so several API instances agree on who
// may write bookings for a facility.
type RedisLocker struct {
	rdb        *redis.Client
	log        zerolog.Logger
	ttl        time.Duration
	retryDelay time.Duration
	newToken   func() string
}

func NewRedisLocker(rdb *redis.Client, log zerolog.Logger) *RedisLocker {
	return &RedisLocker{
		rdb:        rdb,
		log:        log,
		ttl:        10 * time.Second,
		retryDelay: 50 * time.Millisecond,
		newToken:   uuid.NewString,
	}
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	key = "lock:" + key
	token := l.newToken()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ErrLockTimeout
		case <-time.After(l.retryDelay):
		}
	}
}

func (l *RedisLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := l.rdb.Eval(ctx, unlockScript, []string{key}, token).Err(); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("release lock failed; it will expire on its own")
	}
}
