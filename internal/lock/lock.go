// Package lock serializes scheduling writes per dentist. Create and
// reschedule are check-then-act sequences against the appointment
// table, so two concurrent bookings for the same dentist must not both
// pass the conflict check; operations on different dentists never wait
// on each other.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrNotAcquired = errors.New("dentist lock not acquired")

type DentistLocker interface {
	WithDentistLock(ctx context.Context, dentistID uuid.UUID, fn func(ctx context.Context) error) error
}

type redisDentistLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDentistLocker(client *redis.Client, ttl time.Duration) DentistLocker {
	return &redisDentistLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisDentistLocker) WithDentistLock(ctx context.Context, dentistID uuid.UUID, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("lock:dentist:%s", dentistID.String())
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire dentist lock: %w", err)
	}
	if !ok {
		return ErrNotAcquired
	}

	defer func() {
		_ = l.release(ctx, key, token)
	}()

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockCtx)
}

// Only the holder of the token may delete the key, otherwise a lock
// that expired mid-operation could release someone else's.
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisDentistLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release dentist lock: %w", err)
	}
	return nil
}
