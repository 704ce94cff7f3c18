package worker

import (
	"context"
	"sync/atomic"
	"testing"
)

type countJob struct {
	counter *atomic.Int64
}

type countResult struct {
	err error
}

func (r *countResult) GetError() error { return r.err }

func (j *countJob) Execute(ctx context.Context) Result {
	j.counter.Add(1)
	return &countResult{}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	var counter atomic.Int64

	pool := NewPool(4)
	pool.Start()

	const jobs = 50
	for i := 0; i < jobs; i++ {
		pool.Submit(&countJob{counter: &counter})
	}

	results := pool.Wait()

	if counter.Load() != jobs {
		t.Errorf("Expected %d executions, got %d", jobs, counter.Load())
	}
	if len(results) != jobs {
		t.Errorf("Expected %d results, got %d", jobs, len(results))
	}
}

func TestPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	var counter atomic.Int64

	pool := NewPool(0)
	pool.Start()
	pool.Submit(&countJob{counter: &counter})
	pool.Wait()

	if counter.Load() != 1 {
		t.Errorf("Expected the job to run, got %d executions", counter.Load())
	}
}
