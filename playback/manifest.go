package playback

import (
	"github.com/jonwraymond/trackprobe/media"
)

// Manifest mime types reported by the streaming API.
const (
	MimeTypeDirect    = "application/vnd.tidal.bts"
	MimeTypeSegmented = "application/dash+xml"
)

// Manifest is a decoded stream manifest. The set of implementations is closed.
type Manifest interface {
	manifestKind() string
}

// DirectManifest points at a single progressive stream.
type DirectManifest struct {
	MimeType       string   `json:"mimeType"`
	Codecs         string   `json:"codecs"`
	EncryptionType string   `json:"encryptionType"`
	URLs           []string `json:"urls"`
}

func (*DirectManifest) manifestKind() string { return "direct" }

// AudioTrack describes one audio representation of a segmented manifest.
type AudioTrack struct {
	ID         string
	Codec      string
	Bitrate    int // bits per second
	SampleRate int // Hz
}

// Tracks groups the representations of a segmented manifest by media type.
type Tracks struct {
	Audios []AudioTrack
}

// SegmentedManifest is an adaptive manifest with per-track descriptors.
type SegmentedManifest struct {
	Tracks Tracks
}

func (*SegmentedManifest) manifestKind() string { return "segmented" }

// FirstAudio returns the first audio track.
func (m *SegmentedManifest) FirstAudio() (AudioTrack, bool) {
	if m == nil || len(m.Tracks.Audios) == 0 {
		return AudioTrack{}, false
	}
	return m.Tracks.Audios[0], true
}

// Match calls the handler for m's kind. It is the only place that inspects
// the concrete manifest type, so a new kind adds a parameter here and every
// caller must handle it.
func Match[T any](m Manifest, onDirect func(*DirectManifest) (T, error), onSegmented func(*SegmentedManifest) (T, error)) (T, error) {
	switch v := m.(type) {
	case *DirectManifest:
		if v != nil {
			return onDirect(v)
		}
	case *SegmentedManifest:
		if v != nil {
			return onSegmented(v)
		}
	}
	var zero T
	return zero, ErrUnknownManifest
}

// Kind names m's kind: "direct", "segmented", or "" for nil.
func Kind(m Manifest) string {
	if m == nil {
		return ""
	}
	return m.manifestKind()
}

// Info is the playback info for one (track, quality) pair.
type Info struct {
	TrackID           media.ItemID
	AudioQuality      media.AudioQuality
	AssetPresentation string
	AudioMode         string
	ManifestMimeType  string
	Manifest          Manifest
	BitDepth          int
	SampleRate        int
}

// IsSegmented reports whether the manifest is a segmented one.
func (i *Info) IsSegmented() bool {
	return i != nil && i.ManifestMimeType == MimeTypeSegmented
}
