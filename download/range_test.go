package download

import (
	"errors"
	"testing"
)

func TestRange(t *testing.T) {
	tests := []struct {
		r      Range
		header string
		n      int64
		valid  bool
	}{
		{HeadRange, "bytes=0-43", 44, true},
		{Range{Start: 100, End: -1}, "bytes=100-", -1, true},
		{Range{Start: 10, End: 5}, "", 0, false},
		{Range{Start: -1, End: 5}, "", 0, false},
	}
	for _, tt := range tests {
		err := tt.r.Validate()
		if tt.valid != (err == nil) {
			t.Errorf("%+v Validate() = %v", tt.r, err)
			continue
		}
		if !tt.valid {
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("%+v error = %v, want ErrInvalidRange", tt.r, err)
			}
			continue
		}
		if got := tt.r.Header(); got != tt.header {
			t.Errorf("Header() = %q, want %q", got, tt.header)
		}
		if got := tt.r.Len(); got != tt.n {
			t.Errorf("Len() = %d, want %d", got, tt.n)
		}
	}
}

func TestParseContentRange(t *testing.T) {
	tests := map[string]int64{
		"bytes 0-43/1234567": 1234567,
		"bytes 0-43/*":       -1,
		"bytes */1000":       1000,
		"items 0-1/2":        -1,
		"":                   -1,
		"bytes 0-43/abc":     -1,
	}
	for in, want := range tests {
		if got := parseContentRange(in); got != want {
			t.Errorf("parseContentRange(%q) = %d, want %d", in, got, want)
		}
	}
}
