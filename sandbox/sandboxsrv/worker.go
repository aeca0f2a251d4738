package sandboxsrv

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/sandbox"
)

// shutdownGrace bounds the queue and repository calls made after cancellation
const shutdownGrace = 5 * time.Second

type WorkerConfig struct {
	Workers      int
	PollTimeout  time.Duration
	MoveInterval time.Duration
	RetryDelay   time.Duration
	MaxAttempts  int
}

func (c WorkerConfig) withDefaults() WorkerConfig {
	if c.Workers <= 0 {
		c.Workers = 2
	}
	if c.PollTimeout <= 0 {
		c.PollTimeout = 5 * time.Second
	}
	if c.MoveInterval <= 0 {
		c.MoveInterval = 30 * time.Second
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 10 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	return c
}

// AnalysisWorker drains the job queue with a fixed pool of goroutines and
// promotes delayed retries on a ticker.
type AnalysisWorker struct {
	service *Service
	queue   sandbox.JobQueue
	cfg     WorkerConfig
	wg      sync.WaitGroup
}

func NewAnalysisWorker(service *Service, queue sandbox.JobQueue, cfg WorkerConfig) *AnalysisWorker {
	return &AnalysisWorker{
		service: service,
		queue:   queue,
		cfg:     cfg.withDefaults(),
	}
}

// Start launches the pool; it stops when ctx is cancelled. Wait blocks
// until every goroutine has returned.
func (w *AnalysisWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d analysis workers", w.cfg.Workers)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.moveDelayedJobs(ctx)
	}()

	for i := 0; i < w.cfg.Workers; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			w.processJobs(ctx, id)
		}(i)
	}
}

func (w *AnalysisWorker) Wait() {
	w.wg.Wait()
}

func (w *AnalysisWorker) processJobs(ctx context.Context, workerID int) {
	logx.Debugf("Worker %d started", workerID)

	for {
		if ctx.Err() != nil {
			logx.Debugf("Worker %d stopping", workerID)
			return
		}

		job, err := w.queue.Dequeue(ctx, w.cfg.PollTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				continue
			}
			logx.Errorf("Worker %d dequeue error: %v", workerID, err)
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}
		if job == nil {
			continue
		}

		logx.Infof("Worker %d processing job %s (attempt %d)", workerID, job.ID, job.Attempt+1)
		w.handle(ctx, job)
	}
}

func (w *AnalysisWorker) handle(ctx context.Context, job *sandbox.Job) {
	err := w.service.ProcessJob(ctx, job)
	if err == nil {
		return
	}

	// Shutting down: hand the same attempt back to the queue for the next run.
	if ctx.Err() != nil {
		bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
		defer cancel()
		if qerr := w.queue.EnqueueDelayed(bg, *job, 0); qerr != nil {
			logx.Errorf("Failed to requeue job %s on shutdown: %v", job.ID, qerr)
			w.abandon(bg, job, err)
		}
		return
	}

	if job.Attempt+1 < w.cfg.MaxAttempts {
		retry := *job
		retry.Attempt++
		logx.Warnf("Job %s failed, retrying in %s: %v", job.ID, w.cfg.RetryDelay, err)
		qerr := w.queue.EnqueueDelayed(ctx, retry, w.cfg.RetryDelay)
		if qerr == nil {
			return
		}
		logx.Errorf("Failed to schedule retry of job %s, abandoning it: %v", job.ID, qerr)
	}

	w.abandon(ctx, job, err)
}

// abandon records the job as failed so its position can still complete
func (w *AnalysisWorker) abandon(ctx context.Context, job *sandbox.Job, cause error) {
	if aerr := w.service.AbandonJob(ctx, job, cause); aerr != nil {
		logx.Errorf("Failed to abandon job %s: %v", job.ID, aerr)
	}
}

func (w *AnalysisWorker) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.MoveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed jobs to ready queue", count)
			}
		}
	}
}
