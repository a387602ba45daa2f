package resilience

import (
	"context"
	"errors"
	"time"
)

// DefaultTimeout is used when Within gets a non-positive timeout.
const DefaultTimeout = 30 * time.Second

// Within runs op with a deadline and returns its value. It returns
// ErrTimeout when the deadline passes first, even if op ignores its context;
// op keeps running in the background in that case. Cancellation of the
// parent context is returned as ctx.Err().
// A non-positive timeout uses DefaultTimeout.
func Within[T any](ctx context.Context, timeout time.Duration, op func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := op(ctx)
		done <- result{val: v, err: err}
	}()

	var zero T
	select {
	case r := <-done:
		if r.err != nil && errors.Is(r.err, context.DeadlineExceeded) && ctx.Err() == context.DeadlineExceeded {
			return zero, ErrTimeout
		}
		return r.val, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrTimeout
		}
		return zero, ctx.Err()
	}
}
