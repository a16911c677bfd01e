package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelPartialLimit_KeepsOrderAndErrors(t *testing.T) {
	boom := errors.New("boom")

	var inFlight, peak atomic.Int32

	task := func(v int, err error) func(context.Context) (int, error) {
		return func(context.Context) (int, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)

			return v, err
		}
	}

	results := ParallelPartialLimit(context.Background(), 2,
		task(1, nil), task(2, boom), task(3, nil), task(4, nil), task(5, nil),
	)

	require.Len(t, results, 5)
	assert.Equal(t, 1, results[0].Value)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.Equal(t, 3, results[2].Value)
	assert.Equal(t, 5, results[4].Value)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestParallelPartialLimit_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := ParallelPartialLimit(ctx, 1,
		func(ctx context.Context) (int, error) { return 0, ctx.Err() },
		func(ctx context.Context) (int, error) { return 0, ctx.Err() },
	)

	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestFanOut_ProcessesEveryItem(t *testing.T) {
	var sum atomic.Int64

	err := FanOut(context.Background(), 3, []int{1, 2, 3, 4, 5, 6}, func(_ context.Context, v int) error {
		sum.Add(int64(v))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(21), sum.Load())
}

func TestFanOut_FirstErrorWins(t *testing.T) {
	boom := errors.New("boom")

	err := FanOut(context.Background(), 2, []int{1, 2, 3, 4}, func(_ context.Context, v int) error {
		if v == 3 {
			return boom
		}
		return nil
	})

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fan out")
}

func TestFanOut_ZeroWorkers(t *testing.T) {
	var calls atomic.Int32

	err := FanOut(context.Background(), 0, []string{"a", "b"}, func(context.Context, string) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}
