package media

import (
	"strings"
	"testing"
)

func TestAudioQuality_Valid(t *testing.T) {
	tests := []struct {
		q    AudioQuality
		want bool
	}{
		{QualityLow, true},
		{QualityHiResLossless, true},
		{"MQA", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.q.Valid(); got != tt.want {
			t.Errorf("AudioQuality(%q).Valid() = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestAudioQualities_NoSeparator(t *testing.T) {
	for _, q := range AudioQualities {
		if strings.Contains(string(q), "-") {
			t.Errorf("quality %q contains '-'", q)
		}
	}
}

func TestItem_IsTrack(t *testing.T) {
	var nilItem *Item
	if nilItem.IsTrack() {
		t.Error("nil item should not be a track")
	}
	if (&Item{ContentType: ContentTypeAlbum}).IsTrack() {
		t.Error("album should not be a track")
	}
	if !(&Item{ContentType: ContentTypeTrack}).IsTrack() {
		t.Error("track should be a track")
	}
}
