package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/async"
)

func TestResolveAndReject(t *testing.T) {
	t.Parallel()

	t.Run("resolve is settled immediately", func(t *testing.T) {
		f := async.Resolve(true)
		assert.True(t, f.IsComplete())

		v, err := f.Await()
		require.NoError(t, err)
		assert.True(t, v)
	})

	t.Run("reject carries the error", func(t *testing.T) {
		boom := errors.New("boom")
		f := async.Reject[int](boom)
		assert.True(t, f.IsComplete())

		v, err := f.Await()
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, v)
	})
}

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns the callback result", func(t *testing.T) {
		f := async.Async(context.Background(), 42, func(_ context.Context, n int) (string, error) {
			time.Sleep(10 * time.Millisecond)
			return fmt.Sprintf("Number: %d", n), nil
		})

		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, "Number: 42", res)
	})

	t.Run("propagates the callback error", func(t *testing.T) {
		expected := errors.New("an error occurred in the async function")
		f := async.Async(context.Background(), 1, func(_ context.Context, _ int) (int, error) {
			return 0, expected
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, expected)
	})

	t.Run("pre-cancelled context skips the callback", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var called atomic.Bool
		f := async.Async(ctx, 1, func(_ context.Context, n int) (int, error) {
			called.Store(true)
			return n, nil
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called.Load())
	})

	t.Run("panic settles with ErrPanic", func(t *testing.T) {
		f := async.Async(context.Background(), 1, func(_ context.Context, _ int) (int, error) {
			panic("kaboom")
		})

		_, err := f.Await()
		require.ErrorIs(t, err, async.ErrPanic)
		assert.Contains(t, err.Error(), "kaboom")
	})
}

func TestIsComplete(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := async.Async(context.Background(), 0, func(_ context.Context, _ int) (bool, error) {
		<-release
		return true, nil
	})

	assert.False(t, f.IsComplete())
	close(release)

	_, err := f.Await()
	require.NoError(t, err)
	assert.True(t, f.IsComplete())

	select {
	case <-f.Done():
	default:
		t.Fatal("Done channel must be closed after settlement")
	}
}

func TestAwaitContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	f := async.Async(context.Background(), 0, func(_ context.Context, _ int) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.AwaitContext(ctx)
	require.ErrorIs(t, err, async.ErrAwaitCancelled)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, f.IsComplete())
}

func TestThen(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 20, func(_ context.Context, n int) (int, error) {
		return n + 1, nil
	})
	g := async.Then(f, func(n int, err error) (string, error) {
		if err != nil {
			return "", err
		}
		return fmt.Sprint(n * 2), nil
	})

	res, err := g.Await()
	require.NoError(t, err)
	assert.Equal(t, "42", res)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	t.Run("keeps input order regardless of completion order", func(t *testing.T) {
		ctx := context.Background()
		delays := []time.Duration{30 * time.Millisecond, 0, 15 * time.Millisecond}
		futures := make([]*async.Future[int], len(delays))
		for i, d := range delays {
			futures[i] = async.Async(ctx, i, func(_ context.Context, n int) (int, error) {
				time.Sleep(d)
				return n, nil
			})
		}

		res, err := async.WaitAll(futures...)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, res)
	})

	t.Run("waits for slow futures even when an early one fails", func(t *testing.T) {
		ctx := context.Background()
		fail := errors.New("fast failure")
		var slowDone atomic.Bool

		fast := async.Reject[int](fail)
		slow := async.Async(ctx, 7, func(_ context.Context, n int) (int, error) {
			time.Sleep(30 * time.Millisecond)
			slowDone.Store(true)
			return n, nil
		})

		res, err := async.WaitAll(fast, slow)
		assert.ErrorIs(t, err, fail)
		assert.True(t, slowDone.Load())
		assert.True(t, async.Settled(fast, slow))
		assert.Equal(t, []int{0, 7}, res)
	})

	t.Run("empty input", func(t *testing.T) {
		res, err := async.WaitAll[int]()
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}
