package itemcache

import "errors"

var (
	// ErrProbeTimeout indicates the host never signalled that loading finished.
	// It wraps resilience.ErrTimeout.
	ErrProbeTimeout = errors.New("itemcache: probe timed out")

	// ErrNoSnapshotter indicates New was given a nil Snapshotter.
	ErrNoSnapshotter = errors.New("itemcache: snapshotter is required")
)
