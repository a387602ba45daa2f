package qualityprobe

import (
	"github.com/jonwraymond/trackprobe/cache"
	"github.com/jonwraymond/trackprobe/media"
)

// Key identifies one probe: a track at a quality.
type Key struct {
	TrackID media.ItemID
	Quality media.AudioQuality
}

// CacheKey encodes k as "<track>-<quality>".
func (k Key) CacheKey() (string, error) {
	return cache.PairKey(k.TrackID.String(), k.Quality.String())
}

// ParseKey decodes a CacheKey result.
func ParseKey(s string) (Key, bool) {
	track, quality, ok := cache.SplitPairKey(s)
	if !ok {
		return Key{}, false
	}
	return Key{TrackID: media.ItemID(track), Quality: media.AudioQuality(quality)}, true
}
