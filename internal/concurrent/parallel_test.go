package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelExecuteWaitsForAll(t *testing.T) {
	var finished atomic.Int32
	boom := errors.New("boom")

	tasks := []Task[int]{
		func(ctx context.Context) (int, error) {
			return 0, boom
		},
		func(ctx context.Context) (int, error) {
			time.Sleep(20 * time.Millisecond)
			finished.Add(1)
			return 2, nil
		},
		func(ctx context.Context) (int, error) {
			finished.Add(1)
			return 3, nil
		},
	}

	results := ParallelExecute(context.Background(), tasks)

	require.Len(t, results, 3)
	assert.Equal(t, int32(2), finished.Load())
	assert.ErrorIs(t, results[0].Error, boom)
	assert.Equal(t, 2, results[1].Value)
	assert.Equal(t, 3, results[2].Value)
	assert.Equal(t, 2, results[2].Index)
	assert.True(t, HasErrors(results))

	failed := Failures(results)
	require.Len(t, failed, 1)
	assert.Equal(t, 0, failed[0].Index)
}

func TestParallelExecuteNoErrors(t *testing.T) {
	results := ParallelExecute(context.Background(), []Task[string]{
		func(ctx context.Context) (string, error) { return "a", nil },
	})
	assert.False(t, HasErrors(results))
	assert.Empty(t, Failures(results))
}
