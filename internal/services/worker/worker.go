// Package worker runs expensive key derivations off the caller's goroutine.
package worker

import "context"

type result[T any] struct {
	v   T
	err error
}

// Do runs f on its own goroutine and waits for it or for ctx to end,
// whichever comes first. When ctx ends first the result of f is dropped;
// f itself runs to completion since the derivations it wraps cannot be
// interrupted.
func Do[T any](ctx context.Context, f func() (T, error)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	ch := make(chan result[T], 1)
	go func() {
		v, err := f()
		ch <- result[T]{v: v, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.v, r.err
	}
}
