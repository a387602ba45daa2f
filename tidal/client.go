package tidal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/jonwraymond/trackprobe/media"
	"github.com/jonwraymond/trackprobe/playback"
	"github.com/jonwraymond/trackprobe/resilience"
)

// Defaults for Config.
const (
	DefaultBaseURL        = "https://api.tidal.com/v1"
	DefaultRequestTimeout = 10 * time.Second
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root. Default: DefaultBaseURL
	BaseURL string

	// CountryCode is sent as the countryCode parameter when set.
	CountryCode string

	// TokenSource authorizes requests. Required.
	TokenSource oauth2.TokenSource

	// Transport is the base round tripper. Default: http.DefaultTransport
	Transport http.RoundTripper

	// RequestTimeout bounds each attempt. Default: DefaultRequestTimeout
	RequestTimeout time.Duration

	// Retry retries network errors and 429/5xx responses. Nil disables retries.
	Retry *resilience.RetryConfig
}

// Client implements playback.InfoResolver over the HTTP API.
type Client struct {
	base   *url.URL
	config Config
	http   *http.Client
	retry  *resilience.Retry
}

// NewClient validates config and applies defaults.
func NewClient(config Config) (*Client, error) {
	if config.TokenSource == nil {
		return nil, fmt.Errorf("%w: token source is required", ErrInvalidConfig)
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(config.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: base url %q", ErrInvalidConfig, config.BaseURL)
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultRequestTimeout
	}
	if config.Transport == nil {
		config.Transport = http.DefaultTransport
	}

	c := &Client{
		base:   base,
		config: config,
		http: &http.Client{Transport: &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, config.TokenSource),
			Base:   config.Transport,
		}},
	}
	if config.Retry != nil {
		rc := *config.Retry
		if rc.RetryIf == nil {
			rc.RetryIf = retryable
		}
		c.retry = resilience.NewRetry(rc)
	}
	return c, nil
}

type playbackInfoResponse struct {
	TrackID           json.Number `json:"trackId"`
	AssetPresentation string      `json:"assetPresentation"`
	AudioMode         string      `json:"audioMode"`
	AudioQuality      string      `json:"audioQuality"`
	ManifestMimeType  string      `json:"manifestMimeType"`
	Manifest          string      `json:"manifest"`
	BitDepth          int         `json:"bitDepth"`
	SampleRate        int         `json:"sampleRate"`
}

// PlaybackInfo fetches and decodes the playback info for id at quality.
func (c *Client) PlaybackInfo(ctx context.Context, id media.ItemID, quality media.AudioQuality) (*playback.Info, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: empty track id", ErrTrackNotFound)
	}

	var resp playbackInfoResponse
	err := c.retry.Execute(ctx, func(ctx context.Context) error {
		return c.get(ctx, c.playbackInfoURL(id, quality), &resp)
	})
	if err != nil {
		return nil, err
	}

	manifest, err := playback.ParseManifest(resp.ManifestMimeType, resp.Manifest)
	if err != nil {
		return nil, fmt.Errorf("tidal: track %s: %w", id, err)
	}

	info := &playback.Info{
		TrackID:           id,
		AudioQuality:      media.AudioQuality(resp.AudioQuality),
		AssetPresentation: resp.AssetPresentation,
		AudioMode:         resp.AudioMode,
		ManifestMimeType:  resp.ManifestMimeType,
		Manifest:          manifest,
		BitDepth:          resp.BitDepth,
		SampleRate:        resp.SampleRate,
	}
	if resp.TrackID != "" {
		info.TrackID = media.ItemID(resp.TrackID.String())
	}
	return info, nil
}

func (c *Client) playbackInfoURL(id media.ItemID, quality media.AudioQuality) string {
	u := *c.base
	u.Path = u.Path + "/tracks/" + url.PathEscape(id.String()) + "/playbackinfo"
	q := url.Values{}
	q.Set("audioquality", quality.String())
	q.Set("playbackmode", "STREAM")
	q.Set("assetpresentation", "FULL")
	if c.config.CountryCode != "" {
		q.Set("countryCode", c.config.CountryCode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return resilience.Permanent(fmt.Errorf("tidal: build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tidal: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("tidal: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{}
		_ = json.Unmarshal(body, apiErr)
		apiErr.Status = resp.StatusCode
		return apiErr
	}
	if err := json.Unmarshal(body, out); err != nil {
		return resilience.Permanent(fmt.Errorf("tidal: decode response: %w", err))
	}
	return nil
}

func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, ErrNoToken) && !errors.Is(err, ErrTokenExpired)
}

var _ playback.InfoResolver = (*Client)(nil)
