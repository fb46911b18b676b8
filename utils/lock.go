package utils

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrLockHeld is returned when another request holds the advisory lock.
var ErrLockHeld = errors.New("advisory lock held by another request")

// releaseScript deletes the lock key only when the caller still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AdvisoryLock is a short-lived redis lock serialising writes on a shared key.
type AdvisoryLock struct {
	client *redis.Client
	key    string
	token  string
}

// AcquireLock takes the lock for key or fails fast with ErrLockHeld.
func AcquireLock(ctx context.Context, client *redis.Client, key string, ttl time.Duration) (*AdvisoryLock, error) {
	token := uuid.New().String()
	ok, err := client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}
	return &AdvisoryLock{client: client, key: key, token: token}, nil
}

// Release frees the lock if this holder still owns it.
func (l *AdvisoryLock) Release(ctx context.Context) error {
	return releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err()
}
