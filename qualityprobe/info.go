package qualityprobe

import (
	"github.com/jonwraymond/trackprobe/media"
	"github.com/jonwraymond/trackprobe/playback"
)

// AudioInfo merges playback info with what the probe measured.
// Zero numeric fields are unknown.
type AudioInfo struct {
	TrackID          media.ItemID
	AudioQuality     media.AudioQuality
	ManifestMimeType string

	SampleRate    int     // Hz
	BitsPerSample int
	Bitrate       float64 // bits per second
	Codec         string
	Duration      float64 // seconds

	// TotalBytes is the full stream size for direct streams, or -1.
	TotalBytes int64

	// Format is the decoded container metadata of a direct stream.
	Format media.Format
}

// Segmented reports whether the info came from a segmented manifest.
func (a AudioInfo) Segmented() bool {
	return a.ManifestMimeType == playback.MimeTypeSegmented
}

// Bitrate returns totalBytes*8/duration, or 0 when either is unknown.
func Bitrate(totalBytes int64, duration float64) float64 {
	if totalBytes <= 0 || duration <= 0 {
		return 0
	}
	return float64(totalBytes) / duration * 8
}

func baseInfo(info *playback.Info) AudioInfo {
	return AudioInfo{
		TrackID:          info.TrackID,
		AudioQuality:     info.AudioQuality,
		ManifestMimeType: info.ManifestMimeType,
		SampleRate:       info.SampleRate,
		BitsPerSample:    info.BitDepth,
		TotalBytes:       -1,
	}
}

func fromSegmented(info *playback.Info, m *playback.SegmentedManifest) (AudioInfo, error) {
	track, ok := m.FirstAudio()
	if !ok {
		return AudioInfo{}, ErrNoAudioTrack
	}
	out := baseInfo(info)
	out.Bitrate = float64(track.Bitrate)
	out.Codec = track.Codec
	if track.SampleRate > 0 {
		out.SampleRate = track.SampleRate
	}
	return out, nil
}

func fromDirect(info *playback.Info, format media.Format, totalBytes int64) AudioInfo {
	out := baseInfo(info)
	out.Format = format
	out.Codec = format.Codec
	out.Duration = format.Duration
	out.TotalBytes = totalBytes
	if format.SampleRate > 0 {
		out.SampleRate = format.SampleRate
	}
	if format.BitsPerSample > 0 {
		out.BitsPerSample = format.BitsPerSample
	}
	out.Bitrate = Bitrate(totalBytes, format.Duration)
	return out
}
