package async

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Future represents the result of an asynchronous computation.
// A Future settles exactly once; after that its value and error never change.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

func newFuture[U any]() *Future[U] {
	return &Future[U]{done: make(chan struct{})}
}

// settle records the outcome and releases waiters. Later calls are ignored.
func (f *Future[U]) settle(res U, err error) {
	f.once.Do(func() {
		f.result = res
		f.err = err
		close(f.done)
	})
}

// Resolve returns a Future that is already settled with v.
// Synchronous computations use it so that callers can treat every outcome uniformly.
func Resolve[U any](v U) *Future[U] {
	f := newFuture[U]()
	f.settle(v, nil)
	return f
}

// Reject returns a Future that is already settled with err.
func Reject[U any](err error) *Future[U] {
	f := newFuture[U]()
	var zero U
	f.settle(zero, err)
	return f
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or for ctx to be done, whichever happens first.
// The Future itself is not affected when ctx ends first.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, errors.Join(ErrAwaitCancelled, ctx.Err())
	}
}

// Done returns a channel that is closed once the Future has settled.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes a function asynchronously and returns a Future.
// The function accepts a context.Context and a parameter of any type T, and returns (U, error).
// A panic inside fn settles the Future with an error wrapping ErrPanic.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := newFuture[U]()

	go func() {
		var zero U

		defer func() {
			if r := recover(); r != nil {
				f.settle(zero, fmt.Errorf("%w: %v", ErrPanic, r))
			}
		}()

		// Early exit prevents running work for an already cancelled caller
		if err := ctx.Err(); err != nil {
			f.settle(zero, err)
			return
		}

		res, err := fn(ctx, param)
		f.settle(res, err)
	}()

	return f
}

// Then returns a Future settled with fn applied to the outcome of f.
// fn runs on its own goroutine once f settles.
func Then[U any, V any](f *Future[U], fn func(U, error) (V, error)) *Future[V] {
	next := newFuture[V]()
	go func() {
		var zero V
		defer func() {
			if r := recover(); r != nil {
				next.settle(zero, fmt.Errorf("%w: %v", ErrPanic, r))
			}
		}()
		next.settle(fn(f.Await()))
	}()
	return next
}

// WaitAll waits for every future to settle and returns their results in input order.
// Unlike a fail-fast join it never returns before the last future has settled;
// the returned error joins every non-nil future error.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var errs []error

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			errs = append(errs, err)
		}
	}

	return results, errors.Join(errs...)
}

// Settled reports whether every future has completed, without blocking.
func Settled[U any](futures ...*Future[U]) bool {
	for _, f := range futures {
		if !f.IsComplete() {
			return false
		}
	}
	return true
}
