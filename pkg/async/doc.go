// Package async provides generic helpers for deferred values: computations that
// settle now or later and are consumed the same way either way.
//
// The package is centred around the generic type Future. A Future is obtained
// from Async, which starts the supplied function in its own goroutine, or from
// Resolve and Reject, which return Futures that are already settled. The latter
// let synchronous code hand out the same type as asynchronous code, so a
// consumer never needs to know which kind of work produced a value.
//
// WaitAll joins a set of Futures. It always waits for every Future to settle
// before returning, even when some of them failed early, which makes it safe to
// aggregate the results: nothing is reported while work is still pending.
//
// # Usage
//
//	import "github.com/dmitrymomot/formkit/pkg/async"
//
//	sync := async.Resolve(true)
//	remote := async.Async(ctx, "CZE", func(ctx context.Context, code string) (bool, error) {
//	    return lookup.Contains(ctx, "countries", code)
//	})
//
//	results, err := async.WaitAll(sync, remote)
//
// # Error Handling
//
// Await returns the error produced by the callback. A panicking callback settles
// its Future with an error wrapping ErrPanic instead of crashing the process.
// AwaitContext stops waiting when the supplied context ends and returns an error
// wrapping ErrAwaitCancelled; the Future keeps running and can still be awaited.
//
// # Performance Considerations
//
// Futures are lightweight wrappers around goroutines and channels. Resolve and
// Reject do not start goroutines at all.
package async
