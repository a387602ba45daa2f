package download

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonwraymond/trackprobe/media"
	"github.com/jonwraymond/trackprobe/playback"
	"github.com/jonwraymond/trackprobe/resilience"
)

// DefaultRequestTimeout bounds each HTTP attempt.
const DefaultRequestTimeout = 15 * time.Second

// Progress reports a download's state. Total is the full stream size, or -1
// when the server did not announce it.
type Progress struct {
	Downloaded int64
	Total      int64
}

// Request names the stream and the byte range to fetch.
type Request struct {
	TrackID media.ItemID
	Quality media.AudioQuality
	Range   Range
	// Info is the track's playback info. When nil, Config.Resolver fetches it.
	Info *playback.Info
}

// Downloader fetches part of a track's stream.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: must honor cancellation and deadlines.
//   - Progress: onProgress may be nil; when set it is called at least once
//     after the response headers arrive, from the calling goroutine.
type Downloader interface {
	Download(ctx context.Context, req Request, onProgress func(Progress)) ([]byte, error)
}

// Config configures a Client.
type Config struct {
	// HTTPClient performs requests. Default: a client with no overall timeout.
	HTTPClient *http.Client

	// Resolver fetches playback info for requests that carry none.
	Resolver playback.InfoResolver

	// RequestTimeout bounds each attempt.
	// Default: DefaultRequestTimeout
	RequestTimeout time.Duration

	// Retry retries network errors and 429/5xx responses. Nil disables retries.
	Retry *resilience.RetryConfig

	// UserAgent is sent with every request when set.
	UserAgent string
}

// Client is the HTTP Downloader.
type Client struct {
	config Config
	retry  *resilience.Retry
}

// NewClient creates a client with defaults applied.
func NewClient(config Config) *Client {
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{}
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultRequestTimeout
	}
	c := &Client{config: config}
	if config.Retry != nil {
		rc := *config.Retry
		if rc.RetryIf == nil {
			rc.RetryIf = retryable
		}
		c.retry = resilience.NewRetry(rc)
	}
	return c
}

// Download fetches req.Range of the track's stream.
func (c *Client) Download(ctx context.Context, req Request, onProgress func(Progress)) ([]byte, error) {
	if err := req.Range.Validate(); err != nil {
		return nil, err
	}
	info := req.Info
	if info == nil {
		if c.config.Resolver == nil {
			return nil, ErrNoPlaybackInfo
		}
		var err error
		if info, err = c.config.Resolver.PlaybackInfo(ctx, req.TrackID, req.Quality); err != nil {
			return nil, fmt.Errorf("download: playback info: %w", err)
		}
	}
	url, err := streamURL(info.Manifest)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = c.retry.Execute(ctx, func(ctx context.Context) error {
		var ferr error
		data, ferr = c.fetch(ctx, url, req.Range, onProgress)
		return ferr
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func streamURL(m playback.Manifest) (string, error) {
	return playback.Match(m,
		func(d *playback.DirectManifest) (string, error) {
			for _, u := range d.URLs {
				if u != "" {
					return u, nil
				}
			}
			return "", ErrNoStreamURL
		},
		func(*playback.SegmentedManifest) (string, error) {
			return "", ErrNotDirect
		},
	)
}

func (c *Client) fetch(ctx context.Context, url string, r Range, onProgress func(Progress)) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, resilience.Permanent(fmt.Errorf("download: build request: %w", err))
	}
	httpReq.Header.Set("Range", r.Header())
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.config.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	var total int64 = -1
	body := io.Reader(resp.Body)
	switch resp.StatusCode {
	case http.StatusPartialContent:
		total = parseContentRange(resp.Header.Get("Content-Range"))
	case http.StatusOK:
		// Range ignored: the body is the whole stream from byte 0.
		total = resp.ContentLength
		if r.Start > 0 {
			if _, err := io.CopyN(io.Discard, body, r.Start); err != nil {
				return nil, fmt.Errorf("download: skip to range start: %w", err)
			}
		}
	default:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{Code: resp.StatusCode}
	}
	if n := r.Len(); n >= 0 {
		body = io.LimitReader(body, n)
	}

	var buf bytes.Buffer
	report := func() {
		if onProgress != nil {
			onProgress(Progress{Downloaded: int64(buf.Len()), Total: total})
		}
	}
	report()
	chunk := make([]byte, 32<<10)
	for {
		n, rerr := body.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			report()
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("download: read body: %w", rerr)
		}
	}
	return buf.Bytes(), nil
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return !errors.Is(err, context.Canceled)
}

var _ Downloader = (*Client)(nil)
