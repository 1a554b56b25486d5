// Package pending provides a handle for work that runs on its own goroutine and
// completes later with a value or an error.
//
// The handle does not own cancellation: Await returning because its context ended
// leaves the underlying work running to completion.
package pending

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Result is a not-yet-complete operation that resolves to a T or fails with an error.
type Result[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn on a new goroutine and returns immediately.
// A panic inside fn is recovered and reported as the result's error.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Result[T] {
	r := &Result[T]{done: make(chan struct{})}

	go func() {
		defer close(r.done)
		defer func() {
			if rvr := recover(); rvr != nil {
				slog.ErrorContext(ctx, "panic in pending operation",
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())))
				r.err = fmt.Errorf("pending operation panicked: %v", rvr)
			}
		}()

		r.val, r.err = fn(ctx)
	}()

	return r
}

// Resolved returns a Result that is already complete.
func Resolved[T any](val T, err error) *Result[T] {
	r := &Result[T]{done: make(chan struct{}), val: val, err: err}
	close(r.done)
	return r
}

// Done is closed once the result is available.
func (r *Result[T]) Done() <-chan struct{} {
	return r.done
}

// Await blocks until the result is available or ctx ends, whichever is first.
func (r *Result[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-r.done:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
