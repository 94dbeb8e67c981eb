// Package parallel runs independent evaluation jobs, such as the valuations
// of a batch of formulas, on a bounded pool of goroutines.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrPoolShutdown is returned when trying to submit tasks to a shutdown pool.
var ErrPoolShutdown = errors.New("worker pool has been shutdown")

// WorkerPool manages a fixed set of goroutines. The task channel is buffered
// at twice the worker count, so Submit blocks once workers fall behind.
type WorkerPool struct {
	maxWorkers int
	taskChan   chan func()
	workerWg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If maxWorkers is 0 or negative, it defaults to the number of CPU cores.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		maxWorkers: maxWorkers,
		taskChan:   make(chan func(), maxWorkers*2),
	}
	for range maxWorkers {
		pool.workerWg.Add(1)
		go pool.worker()
	}
	return pool
}

// Workers returns the number of goroutines in the pool.
func (wp *WorkerPool) Workers() int { return wp.maxWorkers }

func (wp *WorkerPool) worker() {
	defer wp.workerWg.Done()
	for task := range wp.taskChan {
		task()
	}
}

// Submit queues task. It blocks while the queue is full and gives up when
// ctx is done or the pool has been shut down.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return ErrPoolShutdown
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case wp.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting tasks and waits for every queued task to finish.
// It is safe to call more than once.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskChan)
		wp.mu.Unlock()
		wp.workerWg.Wait()
	})
}

// Map applies fn to every item on the pool and returns the results in input
// order. If a submission fails, Map waits for the tasks already queued and
// returns their results along with the error; the slots of items never
// submitted hold zero values.
func Map[T, R any](ctx context.Context, wp *WorkerPool, items []T, fn func(context.Context, T) R) ([]R, error) {
	out := make([]R, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		err := wp.Submit(ctx, func() {
			defer wg.Done()
			out[i] = fn(ctx, item)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return out, err
		}
	}
	wg.Wait()
	return out, nil
}
