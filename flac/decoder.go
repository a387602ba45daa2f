package flac

import (
	"bytes"
	"fmt"

	"github.com/mewkiz/flac/meta"

	"github.com/jonwraymond/trackprobe/media"
)

// Signature starts every FLAC stream.
const Signature = "fLaC"

// MinHeaderSize is the signature plus the STREAMINFO block with its header.
const MinHeaderSize = 4 + 4 + 34

// Decoder decodes STREAMINFO into media.Format. The zero value is ready to use.
type Decoder struct{}

// Decode parses data, which must begin at the start of the stream.
func (Decoder) Decode(data []byte) (media.Format, error) {
	if len(data) < len(Signature) || string(data[:len(Signature)]) != Signature {
		return media.Format{}, ErrNotFLAC
	}
	if len(data) < MinHeaderSize {
		return media.Format{}, fmt.Errorf("%w: got %d bytes, need %d", ErrShortData, len(data), MinHeaderSize)
	}

	// The low seven bits of the first header byte hold the block type.
	if meta.Type(data[len(Signature)]&0x7f) != meta.TypeStreamInfo {
		return media.Format{}, ErrNoStreamInfo
	}
	block, err := meta.Parse(bytes.NewReader(data[len(Signature):]))
	if err != nil {
		return media.Format{}, fmt.Errorf("flac: parse stream info: %w", err)
	}
	info, ok := block.Body.(*meta.StreamInfo)
	if !ok {
		return media.Format{}, ErrNoStreamInfo
	}

	f := media.Format{
		Container:     "FLAC",
		Codec:         "FLAC",
		SampleRate:    int(info.SampleRate),
		BitsPerSample: int(info.BitsPerSample),
		Channels:      int(info.NChannels),
		TotalSamples:  info.NSamples,
	}
	if info.SampleRate > 0 && info.NSamples > 0 {
		f.Duration = float64(info.NSamples) / float64(info.SampleRate)
	}
	return f, nil
}
