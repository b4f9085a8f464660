package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func countingJob(n *atomic.Int32) Job {
	return JobFunc(func(context.Context) error {
		n.Add(1)
		return nil
	})
}

func TestPool_RunsJobs(t *testing.T) {
	var executed atomic.Int32
	pool := NewPool(2, 10)
	pool.Start()

	assert.True(t, pool.Enqueue(countingJob(&executed)))
	assert.True(t, pool.Enqueue(countingJob(&executed)))

	assert.Eventually(t, func() bool { return executed.Load() == 2 }, time.Second, 5*time.Millisecond)
	pool.Stop()
}

func TestPool_StopDrainsQueue(t *testing.T) {
	var executed atomic.Int32
	release := make(chan struct{})
	pool := NewPool(1, 10)
	pool.Start()

	pool.Enqueue(JobFunc(func(context.Context) error {
		<-release
		executed.Add(1)
		return nil
	}))
	for i := 0; i < 5; i++ {
		pool.Enqueue(countingJob(&executed))
	}

	stopped := make(chan struct{})
	go func() {
		pool.Stop()
		close(stopped)
	}()
	close(release)

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	assert.EqualValues(t, 6, executed.Load(), "queued jobs run before Stop returns")
	assert.Zero(t, pool.Pending())
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	var executed atomic.Int32
	pool := NewPool(1, 1)
	pool.Start()
	pool.Stop()
	pool.Stop()

	assert.False(t, pool.Enqueue(countingJob(&executed)))
	assert.False(t, pool.TryEnqueue(countingJob(&executed)))
	assert.Zero(t, executed.Load())
}

func TestPool_StopWithoutStart(t *testing.T) {
	var executed atomic.Int32
	pool := NewPool(1, 2)
	pool.Enqueue(countingJob(&executed))

	pool.Stop()
	pool.Start()
	assert.Zero(t, executed.Load())
}

func TestPool_SurvivesPanickingJob(t *testing.T) {
	var executed atomic.Int32
	pool := NewPool(1, 10)
	pool.Start()

	pool.Enqueue(JobFunc(func(context.Context) error { panic("boom") }))
	pool.Enqueue(JobFunc(func(context.Context) error { return errors.New("gateway closed") }))
	pool.Enqueue(countingJob(&executed))

	assert.Eventually(t, func() bool { return executed.Load() == 1 }, time.Second, 5*time.Millisecond)
	pool.Stop()
}

func TestPool_TryEnqueueWhenFull(t *testing.T) {
	pool := NewPool(1, 1)
	defer pool.Stop()

	assert.True(t, pool.TryEnqueue(JobFunc(func(context.Context) error { return nil })))
	assert.False(t, pool.TryEnqueue(JobFunc(func(context.Context) error { return nil })))
	assert.Equal(t, 1, pool.Pending())
}
