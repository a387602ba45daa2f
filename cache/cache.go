package cache

import (
	"errors"
	"strings"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrInvalidKey   = errors.New("cache: key is invalid")
	ErrKeyTooLong   = errors.New("cache: key exceeds max length")
	ErrAmbiguousKey = errors.New("cache: key part contains the separator")
	ErrNilCompute   = errors.New("cache: compute function is nil")
	ErrPanic        = errors.New("cache: compute function panicked")
)

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}

// Outcome classifies a Resolve call.
type Outcome string

const (
	// OutcomeHit means a settled entry answered the call.
	OutcomeHit Outcome = "hit"
	// OutcomeMiss means the call ran the compute function.
	OutcomeMiss Outcome = "miss"
	// OutcomeShared means the call joined a computation started by another caller.
	OutcomeShared Outcome = "shared"
)

// Observer receives one notification per Resolve call that reaches the store.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic and should return quickly.
type Observer interface {
	ObserveLookup(key string, outcome Outcome, err error)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(key string, outcome Outcome, err error)

// ObserveLookup calls f.
func (f ObserverFunc) ObserveLookup(key string, outcome Outcome, err error) {
	f(key, outcome, err)
}
