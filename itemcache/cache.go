package itemcache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/trackprobe/cache"
	"github.com/jonwraymond/trackprobe/media"
	"github.com/jonwraymond/trackprobe/observe"
)

// Component names this package in telemetry.
const Component = "itemcache"

// DefaultFailureThreshold is the number of consecutive probe failures after
// which the cache reports itself degraded.
const DefaultFailureThreshold = 3

// Snapshotter reads the host's bulk item state. The read is synchronous and
// the returned map must not be retained by the host after the call.
type Snapshotter interface {
	Snapshot(ctx context.Context) map[media.ItemID]media.MediaItem
}

// SnapshotFunc adapts a function to Snapshotter.
type SnapshotFunc func(ctx context.Context) map[media.ItemID]media.MediaItem

// Snapshot calls f.
func (f SnapshotFunc) Snapshot(ctx context.Context) map[media.ItemID]media.MediaItem {
	return f(ctx)
}

// Prober makes the host load an item into its state.
//
// Contract:
//   - Side effects: a probe may be user visible; the cache calls it only when
//     the item is absent from the snapshot.
//   - Errors: a returned error means the host state may not contain the item.
type Prober interface {
	Probe(ctx context.Context, id media.ItemID) error
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context, id media.ItemID) error

// Probe calls f.
func (f ProberFunc) Probe(ctx context.Context, id media.ItemID) error {
	return f(ctx, id)
}

// Config configures a Cache.
type Config struct {
	// ContentType is the kind of item the cache keeps.
	// Default: media.ContentTypeTrack
	ContentType media.ContentType

	// FailureThreshold is the number of consecutive probe failures that marks
	// the cache degraded in its health check.
	// Default: DefaultFailureThreshold
	FailureThreshold int

	// Middleware observes probes and lookups. Default: no-op.
	Middleware *observe.Middleware
}

// Cache maps identifiers to item handles.
//
// Contract:
//   - Concurrency: safe for concurrent use. Concurrent Ensure calls for the
//     same missing identifier share one probe.
//   - Ownership: stored handles are never mutated or re-fetched.
//   - Errors: absence is (nil, nil); probe failures are returned and nothing
//     is cached for them.
type Cache struct {
	snap   Snapshotter
	prober Prober
	cfg    Config
	mw     *observe.Middleware

	mu    sync.RWMutex
	items map[media.ItemID]*media.Item

	group    singleflight.Group
	failures atomic.Int64
	probes   atomic.Int64
}

// New creates a cache. A nil prober disables the fallback; absent items are
// then reported as absent after the bulk pass.
func New(snap Snapshotter, prober Prober, cfg Config) (*Cache, error) {
	if snap == nil {
		return nil, ErrNoSnapshotter
	}
	if cfg.ContentType == "" {
		cfg.ContentType = media.ContentTypeTrack
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultFailureThreshold
	}
	mw := cfg.Middleware
	if mw == nil {
		mw = observe.NopMiddleware()
	}
	return &Cache{
		snap:   snap,
		prober: prober,
		cfg:    cfg,
		mw:     mw,
		items:  make(map[media.ItemID]*media.Item),
	}, nil
}

// Ensure returns the item for id, or nil when the host does not know it as
// the configured content type.
func (c *Cache) Ensure(ctx context.Context, id media.ItemID) (*media.Item, error) {
	if id.IsZero() {
		return nil, nil
	}
	if item, ok := c.lookup(id); ok {
		c.mw.RecordLookup(ctx, Component, string(cache.OutcomeHit))
		return item, nil
	}

	outcome := cache.OutcomeShared
	ch := c.group.DoChan(string(id), func() (any, error) {
		outcome = cache.OutcomeMiss
		return c.safeResolve(context.WithoutCancel(ctx), id)
	})

	select {
	case res := <-ch:
		c.mw.RecordLookup(ctx, Component, string(outcome))
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*media.Item), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// safeResolve turns a panic in a host callback into an error for every waiter.
func (c *Cache) safeResolve(ctx context.Context, id media.ItemID) (item *media.Item, err error) {
	defer func() {
		if r := recover(); r != nil {
			item, err = nil, fmt.Errorf("itemcache: resolve %s: %w: %v", id, cache.ErrPanic, r)
		}
	}()
	return c.resolve(ctx, id)
}

func (c *Cache) resolve(ctx context.Context, id media.ItemID) (*media.Item, error) {
	if item, ok := c.lookup(id); ok {
		return item, nil
	}

	c.ingest(c.snap.Snapshot(ctx))
	if item, ok := c.lookup(id); ok {
		return item, nil
	}
	if c.prober == nil {
		return (*media.Item)(nil), nil
	}

	c.probes.Add(1)
	err := c.mw.Observe(ctx, observe.OpMeta{Component: Component, Name: "probe", Key: string(id)}, func(ctx context.Context) error {
		return c.prober.Probe(ctx, id)
	})
	if err != nil {
		c.failures.Add(1)
		return (*media.Item)(nil), fmt.Errorf("itemcache: probe %s: %w", id, err)
	}
	c.failures.Store(0)

	entry, ok := c.snap.Snapshot(ctx)[id]
	if !ok || entry.Item == nil || entry.Item.ContentType != c.cfg.ContentType {
		return (*media.Item)(nil), nil
	}
	c.mu.Lock()
	c.items[id] = entry.Item
	c.mu.Unlock()
	return entry.Item, nil
}

// ingest stores every entry of the configured content type.
func (c *Cache) ingest(snapshot map[media.ItemID]media.MediaItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, entry := range snapshot {
		if id.IsZero() || entry.Item == nil || entry.Item.ContentType != c.cfg.ContentType {
			continue
		}
		c.items[id] = entry.Item
	}
}

func (c *Cache) lookup(id media.ItemID) (*media.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	return item, ok
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Probes returns how many probes the cache has started.
func (c *Cache) Probes() int64 {
	return c.probes.Load()
}
