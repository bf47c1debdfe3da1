package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// unlockScript deletes the lock key only while it still holds our token, so
// a lock that expired and was reacquired by another request is never
// released from here.
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// TripleLock serializes concurrent submissions of the same (email,
// treatment, appointment date) triple. The unique index still closes the
// race on its own; the lock just turns a doomed concurrent insert into an
// early Conflict.
type TripleLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTripleLock(client *redis.Client) *TripleLock {
	return &TripleLock{client: client, ttl: 10 * time.Second}
}

// Acquire takes the lock for the triple and returns a release func. A held
// lock means an identical submission is in flight, reported as ErrDuplicate.
func (l *TripleLock) Acquire(ctx context.Context, email, treatment, date string) (func(), error) {
	key := fmt.Sprintf("booking:lock:%s:%s:%s", email, treatment, date)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire booking lock: %w", err)
	}
	if !ok {
		return nil, ErrDuplicate
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		unlockScript.Run(ctx, l.client, []string{key}, token)
	}
	return release, nil
}
