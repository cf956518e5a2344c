package utils

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelExecutor executes functions in parallel with controlled concurrency
type ParallelExecutor struct {
	concurrency int
	logger      *Logger
}

// NewParallelExecutor creates a new parallel executor
func NewParallelExecutor(concurrency int) *ParallelExecutor {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	return &ParallelExecutor{
		concurrency: concurrency,
		logger:      GetGlobalLogger().WithComponent("executor"),
	}
}

// Concurrency returns the maximum number of tasks run at once
func (pe *ParallelExecutor) Concurrency() int {
	return pe.concurrency
}

// Execute runs tasks in parallel. The first error cancels the shared context and is returned.
func (pe *ParallelExecutor) Execute(ctx context.Context, tasks []func(context.Context) error) error {
	if len(tasks) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(pe.concurrency)

	for i, task := range tasks {
		g.Go(func() error {
			pe.logger.Debugf("Starting task %d", i)
			if err := task(ctx); err != nil {
				pe.logger.WithError(err).Errorf("Task %d failed", i)
				return err
			}
			pe.logger.Debugf("Task %d completed", i)
			return nil
		})
	}

	return g.Wait()
}

// Map applies fn to every item in parallel and returns the results in input order
func Map[T, R any](ctx context.Context, pe *ParallelExecutor, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	tasks := make([]func(context.Context) error, len(items))

	for i, item := range items {
		tasks[i] = func(ctx context.Context) error {
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		}
	}

	if err := pe.Execute(ctx, tasks); err != nil {
		return nil, err
	}
	return results, nil
}
