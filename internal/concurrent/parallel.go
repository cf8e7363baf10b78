package concurrent

import (
	"context"
	"sync"
)

// Result is the settled outcome of one task
type Result[T any] struct {
	Value T
	Error error
	Index int // position of the task in the input slice
}

// Task is a unit of work run by ParallelExecute
type Task[T any] func(ctx context.Context) (T, error)

// ParallelExecute runs every task concurrently and waits for all of them to
// settle, even when some fail. Results keep the order of tasks.
func ParallelExecute[T any](ctx context.Context, tasks []Task[T]) []Result[T] {
	results := make([]Result[T], len(tasks))
	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Add(1)
		go func(index int, t Task[T]) {
			defer wg.Done()
			value, err := t(ctx)
			results[index] = Result[T]{
				Value: value,
				Error: err,
				Index: index,
			}
		}(i, task)
	}

	wg.Wait()
	return results
}

// HasErrors returns true if any result contains an error
func HasErrors[T any](results []Result[T]) bool {
	for _, result := range results {
		if result.Error != nil {
			return true
		}
	}
	return false
}

// Failures returns the failed results in task order
func Failures[T any](results []Result[T]) []Result[T] {
	failed := make([]Result[T], 0)
	for _, result := range results {
		if result.Error != nil {
			failed = append(failed, result)
		}
	}
	return failed
}
