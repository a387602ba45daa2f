package qualityprobe

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jonwraymond/trackprobe/cache"
	"github.com/jonwraymond/trackprobe/download"
	"github.com/jonwraymond/trackprobe/flac"
	"github.com/jonwraymond/trackprobe/media"
	"github.com/jonwraymond/trackprobe/observe"
	"github.com/jonwraymond/trackprobe/playback"
)

// Component names this package in telemetry.
const Component = "qualityprobe"

// Decoder decodes container metadata from the head of a stream.
type Decoder interface {
	Decode(data []byte) (media.Format, error)
}

// Config configures a Service.
type Config struct {
	// Resolver fetches playback info. Required.
	Resolver playback.InfoResolver

	// Downloader fetches the head of direct streams. Required.
	Downloader download.Downloader

	// Decoder decodes the downloaded head. Default: flac.Decoder{}
	Decoder Decoder

	// Range is the part of a direct stream to download.
	// Default: download.HeadRange (bytes 0-43)
	Range download.Range

	// Policy bounds the result cache. Default: cache.DefaultPolicy()
	Policy *cache.Policy

	// Middleware observes computations and lookups. Default: no-op.
	Middleware *observe.Middleware
}

// Service is the memoized quality probe.
//
// Contract:
//   - Concurrency: safe for concurrent use; one computation per Key at a time.
//   - Context: a caller whose context ends gets ctx.Err(); the computation
//     continues and its result is cached for later callers.
//   - Errors: stage failures wrap ErrPlaybackInfo, ErrDownload, ErrDecode or
//     ErrNoAudioTrack and reach every waiter of that Key.
type Service struct {
	cfg     Config
	mw      *observe.Middleware
	results *cache.Memoizer[AudioInfo]

	lastFailed atomic.Bool
}

// New validates cfg and applies defaults.
func New(cfg Config) (*Service, error) {
	if cfg.Resolver == nil {
		return nil, ErrNoResolver
	}
	if cfg.Downloader == nil {
		return nil, ErrNoDownloader
	}
	if cfg.Decoder == nil {
		cfg.Decoder = flac.Decoder{}
	}
	if cfg.Range == (download.Range{}) {
		cfg.Range = download.HeadRange
	}
	policy := cache.DefaultPolicy()
	if cfg.Policy != nil {
		policy = *cfg.Policy
	}
	mw := cfg.Middleware
	if mw == nil {
		mw = observe.NopMiddleware()
	}

	s := &Service{cfg: cfg, mw: mw}
	s.results = cache.NewMemoizer[AudioInfo](policy, cache.WithObserver(cache.ObserverFunc(
		func(key string, outcome cache.Outcome, err error) {
			mw.RecordLookup(context.Background(), Component, string(outcome))
		})))
	return s, nil
}

// Resolve returns the audio info for key, probing only if no result is cached
// and no probe for key is running.
func (s *Service) Resolve(ctx context.Context, key Key) (AudioInfo, error) {
	k, err := key.CacheKey()
	if err != nil {
		return AudioInfo{}, fmt.Errorf("qualityprobe: key %s/%s: %w", key.TrackID, key.Quality, err)
	}
	return s.results.Resolve(ctx, k, func(ctx context.Context) (AudioInfo, error) {
		return s.compute(ctx, k, key)
	})
}

func (s *Service) compute(ctx context.Context, cacheKey string, key Key) (AudioInfo, error) {
	var out AudioInfo
	err := s.mw.Observe(ctx, observe.OpMeta{Component: Component, Name: "compute", Key: cacheKey}, func(ctx context.Context) error {
		info, err := s.cfg.Resolver.PlaybackInfo(ctx, key.TrackID, key.Quality)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPlaybackInfo, err)
		}
		if info == nil {
			return fmt.Errorf("%w: empty response", ErrPlaybackInfo)
		}

		out, err = playback.Match(info.Manifest,
			func(*playback.DirectManifest) (AudioInfo, error) {
				return s.probeDirect(ctx, key, info)
			},
			func(m *playback.SegmentedManifest) (AudioInfo, error) {
				return fromSegmented(info, m)
			},
		)
		if err != nil && info.Manifest == nil {
			return fmt.Errorf("%w: %w", ErrPlaybackInfo, err)
		}
		return err
	})
	s.lastFailed.Store(err != nil)
	return out, err
}

func (s *Service) probeDirect(ctx context.Context, key Key, info *playback.Info) (AudioInfo, error) {
	var total int64 = -1
	data, err := s.cfg.Downloader.Download(ctx, download.Request{
		TrackID: key.TrackID,
		Quality: key.Quality,
		Range:   s.cfg.Range,
		Info:    info,
	}, func(p download.Progress) {
		if p.Total > 0 {
			total = p.Total
		}
	})
	if err != nil {
		return AudioInfo{}, fmt.Errorf("%w: %w", ErrDownload, err)
	}

	format, err := s.cfg.Decoder.Decode(data)
	if err != nil {
		return AudioInfo{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return fromDirect(info, format, total), nil
}

// Peek returns the cached result for key without probing.
func (s *Service) Peek(key Key) (AudioInfo, bool, error) {
	k, err := key.CacheKey()
	if err != nil {
		return AudioInfo{}, false, err
	}
	return s.results.Peek(k)
}

// Invalidate drops the cached result for key.
func (s *Service) Invalidate(key Key) bool {
	k, err := key.CacheKey()
	if err != nil {
		return false
	}
	return s.results.Invalidate(k)
}

// Stats returns the result cache counters.
func (s *Service) Stats() cache.Stats {
	return s.results.Stats()
}
