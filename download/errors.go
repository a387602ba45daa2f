package download

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoStreamURL indicates the manifest carries no URL to download from.
	ErrNoStreamURL = errors.New("download: manifest has no stream url")

	// ErrNotDirect indicates a segmented manifest, which has no single stream.
	ErrNotDirect = errors.New("download: manifest is not a direct stream")

	// ErrInvalidRange indicates a range with End before Start or a negative Start.
	ErrInvalidRange = errors.New("download: invalid byte range")

	// ErrNoPlaybackInfo indicates a request without playback info and no resolver configured.
	ErrNoPlaybackInfo = errors.New("download: playback info required")
)

// StatusError is an unexpected HTTP status from the stream host.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("download: unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

// Temporary reports whether retrying may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}
