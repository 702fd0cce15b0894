package queue

import (
	"context"
	"time"
)

// MessageInterface is a delivered job that must be settled exactly once
type MessageInterface interface {
	Ack() error
	Nack(requeue bool) error
	GetJob() *Job
}

// Enqueuer publishes jobs
type Enqueuer interface {
	Enqueue(ctx context.Context, job *Job) error
}

// JobQueue carries conversion jobs from the API to the worker
type JobQueue interface {
	Enqueuer

	// Consume delivers due jobs until ctx is cancelled. Each message must be
	// acked or nacked; at most prefetchCount are outstanding at once. Both
	// channels are closed when delivery stops.
	Consume(ctx context.Context, prefetchCount int) (<-chan *Message, <-chan error, error)

	Close() error
	HealthCheck(ctx context.Context) error
}

// DLQPurger removes dead-lettered jobs older than retention and reports how many it removed
type DLQPurger interface {
	PurgeOlderThan(ctx context.Context, retention time.Duration) (int, error)
}
