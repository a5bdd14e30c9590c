package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Task is one input and its outcome. A task that never ran because the pool
// stopped early carries the context error.
type Task[T any, R any] struct {
	Input  T
	Result R
	Err    error
}

// ProcessFunc is the function signature for processing a single task.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool is a generic worker pool with configurable concurrency.
type Pool[T any, R any] struct {
	workers  int
	failFast bool
	process  ProcessFunc[T, R]
}

// Option configures a Pool.
type Option func(*options)

type options struct {
	failFast bool
}

// WithFailFast cancels outstanding work after the first failed task.
func WithFailFast(enabled bool) Option {
	return func(o *options) { o.failFast = enabled }
}

// NewPool creates a new worker pool.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R], opts ...Option) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Pool[T, R]{
		workers:  workers,
		failFast: o.failFast,
		process:  fn,
	}
}

// Execute runs all inputs through the pool. Results are returned in input
// order regardless of completion order.
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Task[T, R] {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Task[T, R], len(inputs))
	done := make([]bool, len(inputs))
	inputCh := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range inputCh {
				result, err := p.process(ctx, inputs[idx])
				results[idx] = Task[T, R]{Input: inputs[idx], Result: result, Err: err}
				done[idx] = true
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Int("index", idx).Msg("Task failed")
					if p.failFast {
						cancel()
					}
				}
			}
		}(w)
	}

send:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break send
		case inputCh <- i:
		}
	}
	close(inputCh)
	wg.Wait()

	for i := range results {
		if !done[i] {
			results[i] = Task[T, R]{Input: inputs[i], Err: context.Cause(ctx)}
		}
	}
	return results
}
