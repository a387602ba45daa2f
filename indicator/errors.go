package indicator

import "errors"

// ErrNoProbe indicates a Config without an audio info resolver.
var ErrNoProbe = errors.New("indicator: audio info resolver is required")
