package itemcache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jonwraymond/trackprobe/media"
	"github.com/jonwraymond/trackprobe/resilience"
	"github.com/jonwraymond/trackprobe/signal"
)

// Defaults for ProberConfig.
const (
	DefaultProbeTimeout = 10 * time.Second
	DefaultDoneSignal   = "page/IS_DONE_LOADING"
)

// Navigator controls the host's current location.
type Navigator interface {
	Location() string
	Navigate(ctx context.Context, location string) error
}

// ProberConfig configures a NavigationProber.
type ProberConfig struct {
	// Timeout bounds the wait for the done signal.
	// Default: DefaultProbeTimeout
	Timeout time.Duration

	// DoneSignal is the event the host emits when a page finished loading.
	// Default: DefaultDoneSignal
	DoneSignal string

	// Target maps an identifier to the location that loads it.
	// Default: "/track/<id>"
	Target func(media.ItemID) string
}

// TrackTarget returns the track page for id.
func TrackTarget(id media.ItemID) string {
	return "/track/" + id.String()
}

// NavigationProber loads an item by navigating the host to its page, waiting
// for the done signal, and navigating back.
type NavigationProber struct {
	nav    Navigator
	await  signal.Awaiter
	config ProberConfig
}

// NewNavigationProber creates a prober with defaults applied.
func NewNavigationProber(nav Navigator, await signal.Awaiter, config ProberConfig) *NavigationProber {
	if config.Timeout <= 0 {
		config.Timeout = DefaultProbeTimeout
	}
	if config.DoneSignal == "" {
		config.DoneSignal = DefaultDoneSignal
	}
	if config.Target == nil {
		config.Target = TrackTarget
	}
	return &NavigationProber{nav: nav, await: await, config: config}
}

// Probe navigates to id's page and back. The original location is restored
// whether or not the done signal arrived, and only after the navigation to
// the target has returned. Timeout bounds the wait that follows that
// navigation, not the navigation itself.
func (p *NavigationProber) Probe(ctx context.Context, id media.ItemID) (err error) {
	origin := p.nav.Location()
	defer func() {
		// Restore even when ctx is done; the host must not stay on the probe page.
		if rerr := p.nav.Navigate(context.WithoutCancel(ctx), origin); rerr != nil {
			err = errors.Join(err, fmt.Errorf("itemcache: restore %q: %w", origin, rerr))
		}
	}()

	waitCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	var timer atomic.Pointer[time.Timer]
	defer func() {
		if t := timer.Load(); t != nil {
			t.Stop()
		}
	}()

	target := p.config.Target(id)
	_, err = p.await.Await(waitCtx, func(context.Context) error {
		if err := p.nav.Navigate(ctx, target); err != nil {
			return err
		}
		timer.Store(time.AfterFunc(p.config.Timeout, func() { cancel(resilience.ErrTimeout) }))
		return nil
	}, []string{p.config.DoneSignal}, nil)
	if err != nil && ctx.Err() == nil && errors.Is(context.Cause(waitCtx), resilience.ErrTimeout) {
		return fmt.Errorf("%w: %w after %s", ErrProbeTimeout, resilience.ErrTimeout, p.config.Timeout)
	}
	return err
}

var _ Prober = (*NavigationProber)(nil)
