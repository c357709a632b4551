package queue

import "context"

// Queue is a durable, at-least-once asynchronous task channel. Enqueue is
// synchronous and only acknowledges durability; callers learn a job's
// outcome by polling GetJob, never from Enqueue itself.
type Queue interface {
	// Enqueue stores the job durably and makes it claimable. The returned
	// job is in the queued state with no return value yet.
	Enqueue(ctx context.Context, jobType string, payload interface{}) (*Job, error)

	// Dequeue claims the next queued job under a lease. It blocks up to
	// the configured poll timeout and returns (nil, nil) when nothing is
	// available.
	Dequeue(ctx context.Context) (*Job, error)

	// Complete stores the return value and marks the job completed.
	Complete(ctx context.Context, id string, returnValue interface{}) error

	// Fail records the failure message and marks the job failed.
	Fail(ctx context.Context, id string, message string) error

	// GetJob returns the job or ErrJobNotFound.
	GetJob(ctx context.Context, id string) (*Job, error)

	// ReclaimExpired re-queues active jobs whose lease has expired, so a
	// crashed worker's work becomes deliverable again. Returns how many
	// jobs were re-queued.
	ReclaimExpired(ctx context.Context) (int, error)
}
