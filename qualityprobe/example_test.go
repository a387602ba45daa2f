package qualityprobe_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/trackprobe/download"
	"github.com/jonwraymond/trackprobe/media"
	"github.com/jonwraymond/trackprobe/playback"
	"github.com/jonwraymond/trackprobe/qualityprobe"
)

func ExampleService_Resolve() {
	resolver := playback.InfoResolverFunc(func(ctx context.Context, id media.ItemID, q media.AudioQuality) (*playback.Info, error) {
		return &playback.Info{
			TrackID:          id,
			AudioQuality:     q,
			ManifestMimeType: playback.MimeTypeSegmented,
			BitDepth:         24,
			Manifest: &playback.SegmentedManifest{Tracks: playback.Tracks{Audios: []playback.AudioTrack{
				{Codec: "flac", Bitrate: 2304000, SampleRate: 96000},
			}}},
		}, nil
	})

	svc, err := qualityprobe.New(qualityprobe.Config{
		Resolver:   resolver,
		Downloader: download.NewClient(download.Config{Resolver: resolver}),
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	info, err := svc.Resolve(context.Background(), qualityprobe.Key{TrackID: "77646168", Quality: media.QualityHiResLossless})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%dHz %dbit %.0fb/s %s\n", info.SampleRate, info.BitsPerSample, info.Bitrate, info.Codec)
	// Output:
	// 96000Hz 24bit 2304000b/s flac
}
