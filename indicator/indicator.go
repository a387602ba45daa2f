package indicator

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/trackprobe/media"
	"github.com/jonwraymond/trackprobe/observe"
	"github.com/jonwraymond/trackprobe/qualityprobe"
	"github.com/jonwraymond/trackprobe/settings"
)

// Component names this package in telemetry.
const Component = "indicator"

// Badge texts.
const (
	UnknownText    = "Unknown"
	FailedPrefix   = "Loading Info Failed - "
	MaxErrorLength = 64
)

// AudioInfoResolver is satisfied by *qualityprobe.Service.
type AudioInfoResolver interface {
	Resolve(ctx context.Context, key qualityprobe.Key) (qualityprobe.AudioInfo, error)
}

// ItemResolver is satisfied by *itemcache.Cache.
type ItemResolver interface {
	Ensure(ctx context.Context, id media.ItemID) (*media.Item, error)
}

// Badge is the rendered indicator state.
type Badge struct {
	Visible bool
	Text    string

	// Bordered follows settings.ShowInfoBorder on success. A failed badge is
	// always bordered; callers draw that border in their error style.
	Bordered bool
	Failed   bool

	// Tags are the track's media tags, if the item could be resolved.
	Tags []string
}

// Config configures an Indicator.
type Config struct {
	// Probe resolves audio info. Required.
	Probe AudioInfoResolver

	// Items resolves track items for their tags. Optional.
	Items ItemResolver

	// Settings provides the badge preferences. Default: settings.Default()
	Settings settings.Source

	// Middleware observes renders. Default: no-op.
	Middleware *observe.Middleware
}

// Indicator renders badges.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Context: Render returns once the probe returns or ctx ends.
type Indicator struct {
	probe    AudioInfoResolver
	items    ItemResolver
	settings settings.Source
	mw       *observe.Middleware
}

// New validates cfg and applies defaults.
func New(cfg Config) (*Indicator, error) {
	if cfg.Probe == nil {
		return nil, ErrNoProbe
	}
	if cfg.Settings == nil {
		cfg.Settings = settings.Static(settings.Default())
	}
	if cfg.Middleware == nil {
		cfg.Middleware = observe.NopMiddleware()
	}
	return &Indicator{
		probe:    cfg.Probe,
		items:    cfg.Items,
		settings: cfg.Settings,
		mw:       cfg.Middleware,
	}, nil
}

// Render computes the badge for pc.
func (ind *Indicator) Render(ctx context.Context, pc media.PlaybackContext) Badge {
	prefs := ind.settings.Settings()
	if !prefs.ShowInfo || !pc.ActualAudioQuality.Valid() || pc.ActualProductID.IsZero() {
		return Badge{}
	}

	badge := Badge{Visible: true}
	key := qualityprobe.Key{TrackID: pc.ActualProductID, Quality: pc.ActualAudioQuality}
	meta := observe.OpMeta{Component: Component, Name: "render", Key: pc.ActualProductID.String()}

	err := ind.mw.Observe(ctx, meta, func(ctx context.Context) error {
		var g errgroup.Group
		g.Go(func() error {
			badge.Tags = ind.tags(ctx, pc.ActualProductID)
			return nil
		})
		g.Go(func() error {
			info, err := ind.probe.Resolve(ctx, key)
			if err != nil {
				return err
			}
			badge.Text = Text(info)
			return nil
		})
		return g.Wait()
	})
	if err != nil {
		badge.Failed = true
		badge.Bordered = true
		badge.Text = FailureText(err)
		return badge
	}
	badge.Bordered = prefs.ShowInfoBorder
	return badge
}

func (ind *Indicator) tags(ctx context.Context, id media.ItemID) []string {
	if ind.items == nil {
		return nil
	}
	item, err := ind.items.Ensure(ctx, id)
	if err != nil {
		ind.mw.Logger().Warn(ctx, "item resolution failed",
			observe.F("item", id.String()),
			observe.F("error", err.Error()),
		)
		return nil
	}
	if item == nil {
		return nil
	}
	return item.MediaTags
}

// Text formats the known parts of info, e.g. "44.1kHz 16bit 1411kb/s".
// The codec is shown for segmented streams only.
func Text(info qualityprobe.AudioInfo) string {
	var parts []string
	if info.SampleRate > 0 {
		parts = append(parts, fmt.Sprintf("%gkHz", float64(info.SampleRate)/1000))
	}
	if info.BitsPerSample > 0 {
		parts = append(parts, fmt.Sprintf("%dbit", info.BitsPerSample))
	}
	if info.Bitrate > 0 {
		parts = append(parts, fmt.Sprintf("%.0fkb/s", info.Bitrate/1000))
	}
	if info.Segmented() && info.Codec != "" {
		parts = append(parts, info.Codec)
	}
	if len(parts) == 0 {
		return UnknownText
	}
	return strings.Join(parts, " ")
}

// FailureText returns FailedPrefix and the first MaxErrorLength characters
// of err's message.
func FailureText(err error) string {
	msg := []rune(err.Error())
	if len(msg) > MaxErrorLength {
		msg = msg[:MaxErrorLength]
	}
	return FailedPrefix + string(msg)
}
