package parallel

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapKeepsInputOrder(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Shutdown()

	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}
	out, err := Map(context.Background(), pool, items, func(_ context.Context, n int) int { return n * n })
	require.NoError(t, err)
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}

func TestShutdownDrainsQueuedTasks(t *testing.T) {
	pool := NewWorkerPool(2)
	var ran atomic.Int64
	for range 10 {
		require.NoError(t, pool.Submit(context.Background(), func() { ran.Add(1) }))
	}
	pool.Shutdown()
	pool.Shutdown()

	assert.Equal(t, int64(10), ran.Load())
	assert.ErrorIs(t, pool.Submit(context.Background(), func() {}), ErrPoolShutdown)
}

func TestMapStopsOnCancelledContext(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int64
	out, err := Map(ctx, pool, make([]int, 10), func(context.Context, int) int {
		calls.Add(1)
		return 1
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, out, 10)
	assert.Zero(t, calls.Load())
}

func TestDefaultWorkerCount(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Shutdown()
	assert.Positive(t, pool.Workers())
}
