package utils

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParallelExecutor(t *testing.T) {
	assert.Equal(t, 4, NewParallelExecutor(4).Concurrency())
	assert.Equal(t, runtime.NumCPU(), NewParallelExecutor(0).Concurrency())
	assert.Equal(t, runtime.NumCPU(), NewParallelExecutor(-1).Concurrency())
}

func TestParallelExecutor_Execute_EmptyTasks(t *testing.T) {
	assert.NoError(t, NewParallelExecutor(2).Execute(context.Background(), nil))
}

func TestParallelExecutor_Execute_AllSuccess(t *testing.T) {
	var count int32
	tasks := make([]func(context.Context) error, 10)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) error {
			atomic.AddInt32(&count, 1)
			return nil
		}
	}

	require.NoError(t, NewParallelExecutor(3).Execute(context.Background(), tasks))
	assert.Equal(t, int32(10), atomic.LoadInt32(&count))
}

func TestParallelExecutor_Execute_OneTaskFails(t *testing.T) {
	sentinel := errors.New("status fetch failed")
	tasks := []func(context.Context) error{
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return sentinel },
		func(ctx context.Context) error { return nil },
	}

	assert.ErrorIs(t, NewParallelExecutor(2).Execute(context.Background(), tasks), sentinel)
}

func TestParallelExecutor_Execute_ConcurrencyLimit(t *testing.T) {
	var current, peak int32
	tasks := make([]func(context.Context) error, 12)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) error {
			n := atomic.AddInt32(&current, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&current, -1)
			return nil
		}
	}

	require.NoError(t, NewParallelExecutor(3).Execute(context.Background(), tasks))
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestParallelExecutor_Execute_ContextCancelledOnFailure(t *testing.T) {
	tasks := []func(context.Context) error{
		func(ctx context.Context) error { return errors.New("fail fast") },
		func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(2 * time.Second):
				return errors.New("context was not cancelled")
			}
		},
	}

	err := NewParallelExecutor(2).Execute(context.Background(), tasks)
	require.Error(t, err)
	assert.Equal(t, "fail fast", err.Error())
}

func TestMap_PreservesOrder(t *testing.T) {
	items := []int{5, 1, 4, 2, 3}

	results, err := Map(context.Background(), NewParallelExecutor(2), items, func(ctx context.Context, n int) (int, error) {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{50, 10, 40, 20, 30}, results)
}

func TestMap_Error(t *testing.T) {
	sentinel := errors.New("bad item")

	results, err := Map(context.Background(), NewParallelExecutor(2), []string{"a", "b"}, func(ctx context.Context, s string) (string, error) {
		if s == "b" {
			return "", sentinel
		}
		return s, nil
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Nil(t, results)
}
