package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/LuckBot_Go/internal/logger"
)

// Job is a unit of background work
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface
type JobFunc func(ctx context.Context) error

// Process calls f(ctx)
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool runs jobs on a fixed set of goroutines.
// Stop finishes every job already queued before returning.
type Pool struct {
	workers int
	queue   chan Job
	wg      sync.WaitGroup

	mu      sync.RWMutex
	started bool
	closed  bool
}

// NewPool creates a pool; call Start before enqueueing more than queueSize jobs
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers, queue: make(chan Job, queueSize)}
}

// Start launches the workers. Calling it again has no effect.
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return
	}
	p.started = true
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
}

func (p *Pool) work() {
	defer p.wg.Done()
	for job := range p.queue {
		p.run(job)
	}
}

// run executes one job; a failure or panic is logged and the worker carries on
func (p *Pool) run(job Job) {
	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	log := logger.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Error(LogMsgWorkerJobPanic, "panic", fmt.Sprint(r))
		}
	}()
	if err := job.Process(ctx); err != nil {
		log.Error(LogMsgWorkerJobFailed, "error", err)
	}
}

// Enqueue queues a job, blocking while the queue is full.
// Jobs enqueued after Stop are dropped and false is returned.
func (p *Pool) Enqueue(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		logger.Warn(LogMsgPoolStopped)
		return false
	}
	p.queue <- job
	return true
}

// TryEnqueue queues a job only if there is room
func (p *Pool) TryEnqueue(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.queue <- job:
		return true
	default:
		logger.Warn(LogMsgQueueFull)
		return false
	}
}

// Pending is the number of queued jobs not yet picked up
func (p *Pool) Pending() int {
	return len(p.queue)
}

// Stop refuses new jobs, runs the queued ones and waits for the workers
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.wg.Wait()
		return
	}
	p.closed = true
	close(p.queue)
	started := p.started
	p.mu.Unlock()

	if !started {
		if n := len(p.queue); n > 0 {
			logger.Warn(LogMsgJobsDiscarded, "count", n)
		}
		return
	}
	p.wg.Wait()
}
