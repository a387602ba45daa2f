// Package qualityprobe measures the real audio quality of a track stream.
//
// Service.Resolve runs the probe pipeline at most once per (track, quality)
// pair and shares the result with every caller: fetch playback info, then
// either download and decode the head of a direct stream or read the first
// audio track of a segmented manifest.
package qualityprobe
