// Package cache provides a keyed asynchronous memoizer.
//
// A Memoizer maps a string key to the single shared result of a computation.
// Concurrent callers for the same key join one in-flight call, and settled
// results are kept in a bounded LRU store with an optional TTL. Failed
// computations are dropped by default so the next caller retries; see
// Policy.RetainFailures.
package cache
