package qualityprobe

import "errors"

// Pipeline stage errors. Stage failures wrap one of these and the cause.
var (
	// ErrPlaybackInfo indicates the playback info request failed.
	ErrPlaybackInfo = errors.New("qualityprobe: playback info")

	// ErrDownload indicates the stream head could not be downloaded.
	ErrDownload = errors.New("qualityprobe: download")

	// ErrDecode indicates the stream head could not be decoded.
	ErrDecode = errors.New("qualityprobe: decode")

	// ErrNoAudioTrack indicates a segmented manifest without audio tracks.
	ErrNoAudioTrack = errors.New("qualityprobe: manifest has no audio track")
)

// Configuration errors.
var (
	ErrNoResolver   = errors.New("qualityprobe: playback info resolver is required")
	ErrNoDownloader = errors.New("qualityprobe: downloader is required")
)
