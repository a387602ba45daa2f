package cache

import "time"

// DefaultMaxEntries is the settled-entry capacity used when Policy.MaxEntries is zero.
const DefaultMaxEntries = 512

// Policy configures memoization behavior.
type Policy struct {
	// MaxEntries bounds the number of settled entries. The least recently used
	// entry is evicted first. Zero means DefaultMaxEntries; negative means unbounded.
	MaxEntries int

	// TTL expires settled entries after this duration. Zero means entries never expire.
	TTL time.Duration

	// RetainFailures keeps failed results as permanent negative entries.
	// When false, a failure is delivered to every caller waiting on the
	// computation and then dropped, so the next call recomputes.
	RetainFailures bool
}

// DefaultPolicy returns the default memoization policy.
// MaxEntries: 512, TTL: none, RetainFailures: false
func DefaultPolicy() Policy {
	return Policy{
		MaxEntries: DefaultMaxEntries,
	}
}

// PermanentPolicy returns a policy that never evicts and never recomputes,
// failures included.
func PermanentPolicy() Policy {
	return Policy{
		MaxEntries:     -1,
		RetainFailures: true,
	}
}

// capacity returns the LRU size, where zero means unbounded.
func (p Policy) capacity() int {
	switch {
	case p.MaxEntries == 0:
		return DefaultMaxEntries
	case p.MaxEntries < 0:
		return 0
	default:
		return p.MaxEntries
	}
}

// ttl returns the entry lifetime, where zero means no expiry.
func (p Policy) ttl() time.Duration {
	if p.TTL < 0 {
		return 0
	}
	return p.TTL
}
