// Package indicator turns the current playback context into the state of the
// stream quality badge.
//
// Render looks the track up in the quality probe and the item cache, then
// formats what it learned, e.g. "96kHz 24bit 2304kb/s". It never returns an
// error: failures become a badge that says so.
package indicator
