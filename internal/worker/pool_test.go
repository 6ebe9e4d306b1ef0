package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingJob struct {
	counter *int64
	err     error
}

type countingResult struct {
	err error
}

func (r *countingResult) GetError() error { return r.err }

func (j *countingJob) Execute(ctx context.Context) Result {
	atomic.AddInt64(j.counter, 1)
	return &countingResult{err: j.err}
}

type slowJob struct {
	started *int64
}

func (j *slowJob) Execute(ctx context.Context) Result {
	atomic.AddInt64(j.started, 1)
	select {
	case <-time.After(5 * time.Second):
	case <-ctx.Done():
	}
	return &countingResult{err: ctx.Err()}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	pool := NewPool(context.Background(), 4)
	pool.Start()

	var executed int64
	for i := 0; i < 20; i++ {
		pool.Submit(&countingJob{counter: &executed})
	}

	results := pool.Wait()
	if len(results) != 20 {
		t.Errorf("Expected 20 results, got %d", len(results))
	}
	if atomic.LoadInt64(&executed) != 20 {
		t.Errorf("Expected 20 executions, got %d", executed)
	}
	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("Expected no error, got %v", r.GetError())
		}
	}
}

func TestPool_SubmitsBeyondChannelCapacity(t *testing.T) {
	// With 8 workers the job and result buffers hold 16 each; submitting
	// far more than buffers plus in-flight jobs from a single goroutine
	// must still complete because results drain as workers finish.
	pool := NewPool(context.Background(), 8)
	pool.Start()

	const jobs = 200
	var executed int64

	done := make(chan []Result, 1)
	go func() {
		for i := 0; i < jobs; i++ {
			pool.Submit(&countingJob{counter: &executed})
		}
		done <- pool.Wait()
	}()

	select {
	case results := <-done:
		if len(results) != jobs {
			t.Errorf("Expected %d results, got %d", jobs, len(results))
		}
		if atomic.LoadInt64(&executed) != jobs {
			t.Errorf("Expected %d executions, got %d", executed, jobs)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Expected submission to finish without blocking on the results buffer")
	}
}

func TestPool_CollectsJobErrors(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	var executed int64
	pool.Submit(&countingJob{counter: &executed})
	pool.Submit(&countingJob{counter: &executed, err: errors.New("boom")})

	results := pool.Wait()
	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("Expected 1 failed job, got %d", failed)
	}
}

func TestPool_SingleWorkerMinimum(t *testing.T) {
	pool := NewPool(context.Background(), 0)
	pool.Start()

	var executed int64
	pool.Submit(&countingJob{counter: &executed})
	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("Expected the pool to clamp to one worker and run, got %d results", len(results))
	}
}

func TestPool_ParentCancellationStopsWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 2)
	pool.Start()

	var started int64
	for i := 0; i < 2; i++ {
		pool.Submit(&slowJob{started: &started})
	}

	// Give the workers a moment to pick the jobs up, then pull the plug.
	time.Sleep(20 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		pool.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected cancellation to unblock Wait promptly")
	}

	if pool.Err() == nil {
		t.Error("Expected the pool to report why it stopped")
	}
}

func TestPool_ShutdownIsIdempotentWithWait(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	var executed int64
	pool.Submit(&countingJob{counter: &executed})
	pool.Wait()
	pool.Shutdown() // must not panic after Wait closed the channels
}
