package lock

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL        = 10 * time.Second
	defaultWait       = 5 * time.Second
	defaultRetryDelay = 25 * time.Millisecond
	defaultPrefix     = "salon:booking-lock"
)

// Снимаем блокировку, только если она все еще принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisConfig параметры распределенной блокировки
type RedisConfig struct {
	TTL        time.Duration // время жизни ключа, если владелец упал
	Wait       time.Duration // сколько ждать освобождения блокировки
	RetryDelay time.Duration // пауза между попытками
	Prefix     string
}

// RedisLocker блокировка на салон, общая для всех инстансов сервиса
type RedisLocker struct {
	rdb        *redis.Client
	ttl        time.Duration
	wait       time.Duration
	retryDelay time.Duration
	prefix     string
}

// NewRedisLocker создает распределенную блокировку поверх Redis
func NewRedisLocker(rdb *redis.Client, cfg RedisConfig) *RedisLocker {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.Wait <= 0 {
		cfg.Wait = defaultWait
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	cfg.Prefix = strings.TrimSpace(cfg.Prefix)
	if cfg.Prefix == "" {
		cfg.Prefix = defaultPrefix
	}

	return &RedisLocker{
		rdb:        rdb,
		ttl:        cfg.TTL,
		wait:       cfg.Wait,
		retryDelay: cfg.RetryDelay,
		prefix:     cfg.Prefix,
	}
}

// Acquire захватывает блокировку салона (SET NX PX) и возвращает функцию освобождения
func (l *RedisLocker) Acquire(ctx context.Context, businessID int64) (func(), error) {
	key := l.prefix + ":" + strconv.FormatInt(businessID, 10)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	for {
		ok, err := l.rdb.SetNX(waitCtx, key, token, l.ttl).Result()
		if err != nil && waitCtx.Err() == nil {
			return nil, fmt.Errorf("%w: SETNX %s: %v", ErrBackend, key, err)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}

		select {
		case <-waitCtx.Done():
			return nil, fmt.Errorf("%w: business id=%d", ErrNotAcquired, businessID)
		case <-time.After(l.retryDelay):
		}
	}
}

func (l *RedisLocker) release(key, token string) {
	// Освобождаем даже при отмененном контексте запроса
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = releaseScript.Run(ctx, l.rdb, []string{key}, token).Err()
}
