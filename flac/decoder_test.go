package flac

import (
	"encoding/binary"
	"errors"
	"testing"
)

// streamHead builds the signature, a STREAMINFO block, and padding up to 44 bytes.
func streamHead(sampleRate uint32, channels, bps uint8, samples uint64) []byte {
	buf := make([]byte, 44)
	copy(buf, Signature)
	// Block header: not last, type 0, length 34.
	buf[4] = 0x00
	buf[5], buf[6], buf[7] = 0, 0, 34

	body := buf[8:42]
	binary.BigEndian.PutUint16(body[0:2], 4096)
	binary.BigEndian.PutUint16(body[2:4], 4096)
	packed := uint64(sampleRate)<<44 | uint64(channels-1)<<41 | uint64(bps-1)<<36 | samples&(1<<36-1)
	binary.BigEndian.PutUint64(body[10:18], packed)
	return buf
}

func TestDecoder_Decode(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate uint32
		channels   uint8
		bps        uint8
		samples    uint64
		wantDur    float64
	}{
		{"cd quality", 44100, 2, 16, 44100 * 180, 180},
		{"hi-res", 192000, 2, 24, 192000 * 60, 60},
		{"unknown length", 48000, 1, 24, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Decoder{}.Decode(streamHead(tt.sampleRate, tt.channels, tt.bps, tt.samples))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if f.SampleRate != int(tt.sampleRate) || f.BitsPerSample != int(tt.bps) || f.Channels != int(tt.channels) {
				t.Errorf("format = %+v", f)
			}
			if f.TotalSamples != tt.samples || f.Duration != tt.wantDur {
				t.Errorf("samples=%d duration=%v, want %d and %v", f.TotalSamples, f.Duration, tt.samples, tt.wantDur)
			}
			if f.Codec != "FLAC" {
				t.Errorf("Codec = %q", f.Codec)
			}
		})
	}
}

func TestDecoder_Errors(t *testing.T) {
	head := streamHead(44100, 2, 16, 1000)
	notInfo := append([]byte(nil), head...)
	notInfo[4] = 0x01 // PADDING block

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrNotFLAC},
		{"mp4", []byte("\x00\x00\x00\x20ftypiso6"), ErrNotFLAC},
		{"truncated", head[:20], ErrShortData},
		{"padding first", notInfo, ErrNoStreamInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (Decoder{}).Decode(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}
