package tidal

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoToken indicates the token source produced an empty access token.
	ErrNoToken = errors.New("tidal: no access token")

	// ErrTokenExpired indicates the host's token has already expired.
	ErrTokenExpired = errors.New("tidal: access token expired")

	// ErrTrackNotFound indicates the API does not know the track.
	ErrTrackNotFound = errors.New("tidal: track not found")

	// ErrInvalidConfig indicates a Config that cannot be used.
	ErrInvalidConfig = errors.New("tidal: invalid config")
)

// APIError is a non-success response from the API.
type APIError struct {
	Status   int
	SubCode  int    `json:"subStatus"`
	UserText string `json:"userMessage"`
}

func (e *APIError) Error() string {
	if e.UserText != "" {
		return fmt.Sprintf("tidal: status %d: %s", e.Status, e.UserText)
	}
	return fmt.Sprintf("tidal: status %d %s", e.Status, http.StatusText(e.Status))
}

// Is matches ErrTrackNotFound for 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrTrackNotFound && e.Status == http.StatusNotFound
}

// Temporary reports whether retrying may succeed.
func (e *APIError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}
