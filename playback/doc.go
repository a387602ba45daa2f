// Package playback models the streaming API's playback info and its two
// manifest kinds.
//
// A Manifest is either a *DirectManifest (one progressive stream URL) or a
// *SegmentedManifest (DASH adaptation sets). Code branches on the kind only
// through Match.
package playback
