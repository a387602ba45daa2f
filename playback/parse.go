package playback

import (
	"encoding/base64"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// ParseManifest decodes a base64 manifest payload of the given mime type.
func ParseManifest(mimeType, payload string) (Manifest, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %w", ErrMalformedManifest, err)
	}

	switch mimeType {
	case MimeTypeDirect:
		return parseDirect(raw)
	case MimeTypeSegmented:
		return parseSegmented(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMimeType, mimeType)
	}
}

func parseDirect(raw []byte) (*DirectManifest, error) {
	var m DirectManifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedManifest, err)
	}
	if len(m.URLs) == 0 {
		return nil, fmt.Errorf("%w: no stream urls", ErrMalformedManifest)
	}
	return &m, nil
}

type mpd struct {
	Periods []struct {
		AdaptationSets []struct {
			ContentType     string `xml:"contentType,attr"`
			MimeType        string `xml:"mimeType,attr"`
			Representations []struct {
				ID                string `xml:"id,attr"`
				Codecs            string `xml:"codecs,attr"`
				Bandwidth         string `xml:"bandwidth,attr"`
				AudioSamplingRate string `xml:"audioSamplingRate,attr"`
			} `xml:"Representation"`
		} `xml:"AdaptationSet"`
	} `xml:"Period"`
}

func parseSegmented(raw []byte) (*SegmentedManifest, error) {
	var doc mpd
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedManifest, err)
	}

	m := &SegmentedManifest{}
	for _, p := range doc.Periods {
		for _, set := range p.AdaptationSets {
			if set.ContentType != "audio" && !strings.HasPrefix(set.MimeType, "audio/") {
				continue
			}
			for _, r := range set.Representations {
				m.Tracks.Audios = append(m.Tracks.Audios, AudioTrack{
					ID:         r.ID,
					Codec:      r.Codecs,
					Bitrate:    atoi(r.Bandwidth),
					SampleRate: atoi(r.AudioSamplingRate),
				})
			}
		}
	}
	return m, nil
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
