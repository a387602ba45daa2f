package signal

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSignals indicates Await was called without any resolve signal.
	ErrNoSignals = errors.New("signal: no resolve signals given")

	// ErrRejected matches any RejectedError.
	ErrRejected = errors.New("signal: rejected")

	// ErrClosed indicates the bus was closed while waiting.
	ErrClosed = errors.New("signal: bus closed")
)

// RejectedError is returned by Await when a reject signal fires first.
type RejectedError struct {
	Event Event
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("signal: rejected by %q", e.Event.Name)
}

// Is reports whether target is ErrRejected.
func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}
