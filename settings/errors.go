package settings

import "errors"

var (
	// ErrInvalidValue indicates a setting value that is not a boolean.
	ErrInvalidValue = errors.New("settings: invalid value")

	// ErrReadFile indicates the settings file could not be read or decoded.
	ErrReadFile = errors.New("settings: read file")
)
