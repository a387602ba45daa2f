package playback

import "errors"

var (
	// ErrUnknownManifest indicates a manifest of no known kind.
	ErrUnknownManifest = errors.New("playback: unknown manifest kind")

	// ErrUnsupportedMimeType indicates a manifest mime type ParseManifest cannot decode.
	ErrUnsupportedMimeType = errors.New("playback: unsupported manifest mime type")

	// ErrMalformedManifest indicates a manifest payload that failed to decode.
	ErrMalformedManifest = errors.New("playback: malformed manifest")
)
