package playback

import (
	"context"

	"github.com/jonwraymond/trackprobe/media"
)

// InfoResolver fetches playback info for a track at a quality.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: must honor cancellation and deadlines.
//   - Errors: a nil error implies a non-nil Info with a decoded Manifest.
type InfoResolver interface {
	PlaybackInfo(ctx context.Context, id media.ItemID, quality media.AudioQuality) (*Info, error)
}

// InfoResolverFunc adapts a function to InfoResolver.
type InfoResolverFunc func(ctx context.Context, id media.ItemID, quality media.AudioQuality) (*Info, error)

// PlaybackInfo calls f.
func (f InfoResolverFunc) PlaybackInfo(ctx context.Context, id media.ItemID, quality media.AudioQuality) (*Info, error) {
	return f(ctx, id, quality)
}
