package sandboxinfra

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/aikyuu/sandbox"
)

// MemoryQueue is a buffered channel with a side list of delayed jobs. It
// lives and dies with the process.
type MemoryQueue struct {
	ready chan sandbox.Job

	mu      sync.Mutex
	delayed []delayedJob
	now     func() time.Time
}

type delayedJob struct {
	job     sandbox.Job
	readyAt time.Time
}

var _ sandbox.JobQueue = (*MemoryQueue)(nil)

func NewMemoryQueue(capacity int) *MemoryQueue {
	if capacity <= 0 {
		capacity = 256
	}
	return &MemoryQueue{
		ready: make(chan sandbox.Job, capacity),
		now:   time.Now,
	}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, job sandbox.Job) error {
	select {
	case q.ready <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*sandbox.Job, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case job := <-q.ready:
		return &job, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *MemoryQueue) EnqueueDelayed(_ context.Context, job sandbox.Job, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.delayed = append(q.delayed, delayedJob{job: job, readyAt: q.now().Add(delay)})
	return nil
}

// MoveDelayedToReady pushes every due delayed job onto the ready channel
func (q *MemoryQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	q.mu.Lock()
	now := q.now()
	var due []sandbox.Job
	pending := q.delayed[:0]
	for _, d := range q.delayed {
		if !d.readyAt.After(now) {
			due = append(due, d.job)
		} else {
			pending = append(pending, d)
		}
	}
	q.delayed = pending
	q.mu.Unlock()

	for i, job := range due {
		if err := q.Enqueue(ctx, job); err != nil {
			return i, err
		}
	}
	return len(due), nil
}

func (q *MemoryQueue) Size(_ context.Context) (int64, error) {
	return int64(len(q.ready)), nil
}
