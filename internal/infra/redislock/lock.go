// Package redislock блокировка дня мастера в Redis.
// Защищает полную замену окон и создание записей от параллельных редакторов.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrLockNotAcquired день уже заблокирован другим запросом
	ErrLockNotAcquired = errors.New("redislock: day lock not acquired")
)

const dateLayout = "2006-01-02"

// Locker блокировка на (мастер, дата)
type Locker interface {
	WithDayLock(ctx context.Context, staffID int64, date time.Time, fn func(ctx context.Context) error) error
}

type redisDayLocker struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisDayLocker создаёт блокировку с ключом prefix:staff:date
func NewRedisDayLocker(client *redis.Client, ttl time.Duration, prefix string) Locker {
	return &redisDayLocker{
		client: client,
		ttl:    ttl,
		prefix: prefix,
	}
}

// Key ключ блокировки дня
func Key(prefix string, staffID int64, date time.Time) string {
	return fmt.Sprintf("%s:lock:day:%d:%s", prefix, staffID, date.Format(dateLayout))
}

func (l *redisDayLocker) WithDayLock(ctx context.Context, staffID int64, date time.Time, fn func(ctx context.Context) error) error {
	key := Key(l.prefix, staffID, date)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire day lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(context.WithoutCancel(ctx), key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

// Удаляем ключ, только если он всё ещё наш
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisDayLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release day lock: %w", err)
	}
	return nil
}

// NoopLocker используется, когда Redis выключен: параллельные замены дня не координируются
type NoopLocker struct{}

func (NoopLocker) WithDayLock(ctx context.Context, staffID int64, date time.Time, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
