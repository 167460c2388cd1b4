package task

import "context"

// Outcome carries the single result of a submitted unit of work.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Submit runs fn on its own goroutine and returns a channel that yields
// exactly one outcome. The channel is buffered so the worker never blocks
// on a caller that gave up waiting.
func Submit[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) <-chan Outcome[T] {
	out := make(chan Outcome[T], 1)
	go func() {
		v, err := fn(ctx)
		out <- Outcome[T]{Value: v, Err: err}
	}()
	return out
}
