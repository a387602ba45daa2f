package signal

import (
	"context"
	"fmt"
	"sync"
)

// Event is a host-emitted signal.
type Event struct {
	Name    string
	Payload any
}

// Awaiter suspends the calling task until one of a set of signals fires.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Ordering: the subscription is registered before trigger runs. trigger
//     runs on the calling goroutine and Await does not return before it does.
//   - Context: Await returns ctx.Err() when ctx ends first. It never times out
//     on its own; callers bound the wait with a deadline.
//   - Errors: a reject signal yields a *RejectedError; a trigger error is
//     returned wrapped.
type Awaiter interface {
	Await(ctx context.Context, trigger func(context.Context) error, resolveOn, rejectOn []string) (Event, error)
}

type delivery struct {
	event    Event
	rejected bool
}

type subscription struct {
	resolve map[string]bool
	reject  map[string]bool
	ch      chan delivery
}

// Bus fans host events out to waiting tasks.
type Bus struct {
	mu     sync.Mutex
	subs   map[uint64]*subscription
	next   uint64
	closed bool
	done   chan struct{}
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[uint64]*subscription),
		done: make(chan struct{}),
	}
}

// Emit delivers an event to every waiter subscribed to name and returns how
// many received it. Each waiter takes the first matching event only.
func (b *Bus) Emit(name string, payload any) int {
	ev := Event{Name: name, Payload: payload}

	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for _, sub := range b.subs {
		var d delivery
		switch {
		case sub.reject[name]:
			d = delivery{event: ev, rejected: true}
		case sub.resolve[name]:
			d = delivery{event: ev}
		default:
			continue
		}
		select {
		case sub.ch <- d:
			delivered++
		default:
			// already holds an earlier event
		}
	}
	return delivered
}

// Await subscribes to resolveOn and rejectOn, runs trigger, and waits for the
// first matching event. A nil trigger just waits.
func (b *Bus) Await(ctx context.Context, trigger func(context.Context) error, resolveOn, rejectOn []string) (Event, error) {
	if len(resolveOn) == 0 {
		return Event{}, ErrNoSignals
	}

	sub := &subscription{
		resolve: toSet(resolveOn),
		reject:  toSet(rejectOn),
		ch:      make(chan delivery, 1),
	}
	id, err := b.subscribe(sub)
	if err != nil {
		return Event{}, err
	}
	defer b.unsubscribe(id)

	if trigger != nil {
		if err := trigger(ctx); err != nil {
			return Event{}, fmt.Errorf("signal: trigger: %w", err)
		}
	}

	select {
	case d := <-sub.ch:
		if d.rejected {
			return d.event, &RejectedError{Event: d.event}
		}
		return d.event, nil
	case <-b.done:
		return Event{}, ErrClosed
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// Waiting returns the number of active waiters.
func (b *Bus) Waiting() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close releases every waiter with ErrClosed. Later Await calls fail immediately.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.done)
}

func (b *Bus) subscribe(sub *subscription) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0, ErrClosed
	}
	b.next++
	b.subs[b.next] = sub
	return b.next, nil
}

func (b *Bus) unsubscribe(id uint64) {
	b.mu.Lock()
	delete(b.subs, id)
	b.mu.Unlock()
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

var _ Awaiter = (*Bus)(nil)
