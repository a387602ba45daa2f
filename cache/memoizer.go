package cache

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces the value memoized under a key.
type ComputeFunc[V any] func(ctx context.Context) (V, error)

// Option configures a Memoizer.
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver attaches an observer notified of every lookup outcome.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// Stats is a point-in-time view of memoizer counters.
type Stats struct {
	Entries  int
	Hits     int64
	Misses   int64
	Shared   int64
	Failures int64
}

type entry[V any] struct {
	value V
	err   error
}

// Memoizer resolves keys to the single shared result of a computation.
//
// Contract:
//   - Concurrency: safe for concurrent use. For a given key at most one
//     ComputeFunc runs at a time, and none runs while a settled entry exists.
//   - Context: the compute function receives a context detached from the
//     caller's cancellation. A caller whose context ends stops waiting and gets
//     ctx.Err(); the computation keeps running and its result is still stored.
//   - Errors: every caller joined on a computation observes the same error.
//     Failures are stored only when Policy.RetainFailures is set.
type Memoizer[V any] struct {
	policy   Policy
	settled  *expirable.LRU[string, entry[V]]
	group    singleflight.Group
	observer Observer

	hits     atomic.Int64
	misses   atomic.Int64
	shared   atomic.Int64
	failures atomic.Int64
}

// NewMemoizer creates a memoizer with the given policy.
func NewMemoizer[V any](policy Policy, opts ...Option) *Memoizer[V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Memoizer[V]{
		policy:   policy,
		settled:  expirable.NewLRU[string, entry[V]](policy.capacity(), nil, policy.ttl()),
		observer: o.observer,
	}
}

// Resolve returns the memoized result for key, running fn only when no
// settled entry exists and no other caller is already computing it.
func (m *Memoizer[V]) Resolve(ctx context.Context, key string, fn ComputeFunc[V]) (V, error) {
	var zero V
	if err := ValidateKey(key); err != nil {
		return zero, err
	}
	if fn == nil {
		return zero, ErrNilCompute
	}

	if e, ok := m.settled.Get(key); ok {
		m.hits.Add(1)
		m.notify(key, OutcomeHit, e.err)
		return e.value, e.err
	}

	// outcome is written only by this caller's flight function, which
	// happens-before the receive below.
	outcome := OutcomeShared
	ch := m.group.DoChan(key, func() (any, error) {
		// A flight for key may have settled between the Get above and DoChan.
		if e, ok := m.settled.Peek(key); ok {
			outcome = OutcomeHit
			return e, nil
		}
		outcome = OutcomeMiss

		v, err := m.run(context.WithoutCancel(ctx), fn)
		e := entry[V]{value: v, err: err}
		if err != nil {
			m.failures.Add(1)
		}
		if err == nil || m.policy.RetainFailures {
			m.settled.Add(key, e)
		}
		return e, nil
	})

	select {
	case res := <-ch:
		e := res.Val.(entry[V])
		switch outcome {
		case OutcomeHit:
			m.hits.Add(1)
		case OutcomeMiss:
			m.misses.Add(1)
		default:
			m.shared.Add(1)
		}
		m.notify(key, outcome, e.err)
		return e.value, e.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (m *Memoizer[V]) run(ctx context.Context, fn ComputeFunc[V]) (v V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn(ctx)
}

// Peek returns the settled result for key without computing or touching
// recency. ok is false when no entry is settled; err is a retained failure.
func (m *Memoizer[V]) Peek(key string) (value V, ok bool, err error) {
	e, ok := m.settled.Peek(key)
	return e.value, ok, e.err
}

// Invalidate drops the settled entry for key. It does not stop a computation
// that is already running; that result is stored when it settles.
func (m *Memoizer[V]) Invalidate(key string) bool {
	return m.settled.Remove(key)
}

// Purge drops every settled entry.
func (m *Memoizer[V]) Purge() {
	m.settled.Purge()
}

// Len returns the number of settled entries.
func (m *Memoizer[V]) Len() int {
	return m.settled.Len()
}

// Stats returns counters accumulated since creation.
func (m *Memoizer[V]) Stats() Stats {
	return Stats{
		Entries:  m.settled.Len(),
		Hits:     m.hits.Load(),
		Misses:   m.misses.Load(),
		Shared:   m.shared.Load(),
		Failures: m.failures.Load(),
	}
}

func (m *Memoizer[V]) notify(key string, outcome Outcome, err error) {
	if m.observer != nil {
		m.observer.ObserveLookup(key, outcome, err)
	}
}
