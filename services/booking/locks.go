package booking

import (
	"context"
	"errors"
	"time"

	"lavellh/utils"

	"github.com/go-redis/redis/v8"
)

// LockManager serialises appointment acceptance per (listing, day).
type LockManager interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// lockHandle is a held lock that can be released.
type lockHandle interface {
	Release(ctx context.Context) error
}

type acquireFunc func(ctx context.Context, key string) (lockHandle, error)

// RedisLockManager holds a short-lived advisory lock in redis. Contention is
// retried briefly; a still-held lock surfaces as Conflict so the client
// re-fetches available slots.
type RedisLockManager struct {
	Client *redis.Client
}

const (
	lockTTL           = 5 * time.Second
	lockRetryAttempts = 3
	lockRetryDelay    = 100 * time.Millisecond
)

func (m *RedisLockManager) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	return acquireWithRetry(ctx, key, fn, func(ctx context.Context, key string) (lockHandle, error) {
		lock, err := utils.AcquireLock(ctx, m.Client, key, lockTTL)
		if err != nil {
			return nil, err
		}
		return lock, nil
	})
}

// acquireWithRetry runs fn under the lock, retrying a held lock a few times
// before giving up with Conflict. Transport failures are not retried here.
func acquireWithRetry(ctx context.Context, key string, fn func(ctx context.Context) error, acquire acquireFunc) error {
	var lock lockHandle
	var err error
	for attempt := 0; attempt < lockRetryAttempts; attempt++ {
		lock, err = acquire(ctx, key)
		if err == nil {
			break
		}
		if !errors.Is(err, utils.ErrLockHeld) {
			return newTransient("lock acquisition failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return newTransient("lock acquisition cancelled: %v", ctx.Err())
		case <-time.After(lockRetryDelay):
		}
	}
	if err != nil {
		return newConflict("another reservation for this slot is being processed, retry shortly")
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = lock.Release(releaseCtx)
	}()

	return fn(ctx)
}

func listingDayLockKey(serviceID, date string) string {
	return "lock:appointments:" + serviceID + ":" + date
}
