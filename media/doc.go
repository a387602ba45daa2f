// Package media defines the track and playback types shared by the caches
// and the quality pipeline.
//
// Item records are owned by the host player. Packages in this module hold
// *Item handles and treat them as immutable.
package media
