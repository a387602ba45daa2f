package health

import "errors"

var (
	// ErrCheckTimeout indicates a check did not return before its deadline.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckPanic indicates a check panicked.
	ErrCheckPanic = errors.New("health: check panicked")

	// ErrCheckerNotFound indicates no checker is registered under a name.
	ErrCheckerNotFound = errors.New("health: checker not found")

	// ErrDuplicateChecker indicates a second checker registered under a taken name.
	ErrDuplicateChecker = errors.New("health: duplicate checker name")
)
