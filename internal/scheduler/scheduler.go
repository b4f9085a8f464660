package scheduler

import (
	"sync"
	"time"

	"github.com/osse101/LuckBot_Go/internal/worker"
)

// Scheduler enqueues recurring jobs onto a worker pool
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval, starting one interval from now
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.schedule(interval, job, false)
}

// ScheduleNow registers a recurring job and also runs it right away
func (s *Scheduler) ScheduleNow(interval time.Duration, job worker.Job) {
	s.schedule(interval, job, true)
}

func (s *Scheduler) schedule(interval time.Duration, job worker.Job, immediate bool) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if immediate {
			s.workerPool.TryEnqueue(job)
		}
		for {
			select {
			case <-ticker.C:
				// Skip a tick rather than pile up behind a slow job
				s.workerPool.TryEnqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
	})
	s.wg.Wait()
}
