// Package resilience provides timeout and retry wrappers for calls into
// host and network collaborators.
//
// The caches in this module never retry on their own. Retry belongs to the
// transport adapters (download, tidal), and timeouts bound waits on host
// signals that may never fire.
//
//	item, err := resilience.Within(ctx, 10*time.Second, func(ctx context.Context) (*media.Item, error) {
//	    return waitForPageLoad(ctx)
//	})
//	if errors.Is(err, resilience.ErrTimeout) {
//	    // the host never signaled
//	}
package resilience
