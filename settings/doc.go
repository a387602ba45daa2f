// Package settings holds the user settings that shape the quality badge.
//
// Settings are read-only from this module's point of view. A Source returns
// the current values on every call, so a host that persists settings
// elsewhere can expose them live through a Store.
package settings
