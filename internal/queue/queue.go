package queue

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Queue is a minimal outbox abstraction: producers publish opaque payloads,
// a single worker consumes them. Publishing must never block the caller's
// primary operation for long; consumers own retry policy.
type Queue interface {
	Publish(ctx context.Context, payload []byte) error
	Consume(ctx context.Context) (<-chan []byte, error)
}

// InMemory is a channel-backed queue for development and tests.
type InMemory struct {
	ch chan []byte
}

// NewInMemory creates a bounded in-memory queue.
func NewInMemory(size int) *InMemory {
	return &InMemory{ch: make(chan []byte, size)}
}

// Publish enqueues a payload.
func (q *InMemory) Publish(ctx context.Context, payload []byte) error {
	select {
	case q.ch <- payload:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume returns a channel drained by the worker.
func (q *InMemory) Consume(ctx context.Context) (<-chan []byte, error) {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			select {
			case payload := <-q.ch:
				select {
				case out <- payload:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Len reports the number of buffered payloads. Used by tests and the
// dashboard's pending-notice count for the in-memory backend.
func (q *InMemory) Len() int {
	return len(q.ch)
}

// Redis implements the queue over a Redis list with RPUSH/BLPOP semantics.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis builds a Redis-list-backed queue.
func NewRedis(client *redis.Client, key string) *Redis {
	return &Redis{client: client, key: key}
}

// Publish enqueues a payload.
func (q *Redis) Publish(ctx context.Context, payload []byte) error {
	return q.client.RPush(ctx, q.key, payload).Err()
}

// Consume streams payloads using BLPOP until the context is cancelled.
func (q *Redis) Consume(ctx context.Context) (<-chan []byte, error) {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			res, err := q.client.BLPop(ctx, 1*time.Second, q.key).Result()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				// redis.Nil means the poll timed out with nothing queued.
				continue
			}
			if len(res) < 2 {
				continue
			}
			select {
			case out <- []byte(res[1]):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
