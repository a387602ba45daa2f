package download

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive byte range. End < 0 means "to the end of the stream".
type Range struct {
	Start int64
	End   int64
}

// HeadRange is the range that covers a FLAC signature and STREAMINFO block.
var HeadRange = Range{Start: 0, End: 43}

// Validate reports ErrInvalidRange for a negative start or an end before start.
func (r Range) Validate() error {
	if r.Start < 0 || (r.End >= 0 && r.End < r.Start) {
		return fmt.Errorf("%w: %d-%d", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

// Len returns the number of bytes in r, or -1 for an open range.
func (r Range) Len() int64 {
	if r.End < 0 {
		return -1
	}
	return r.End - r.Start + 1
}

// Header renders r as a Range header value.
func (r Range) Header() string {
	if r.End < 0 {
		return fmt.Sprintf("bytes=%d-", r.Start)
	}
	return fmt.Sprintf("bytes=%d-%d", r.Start, r.End)
}

// parseContentRange returns the complete length from a Content-Range value
// such as "bytes 0-43/1234567". It returns -1 when the length is unknown.
func parseContentRange(v string) int64 {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "bytes ") {
		return -1
	}
	_, total, ok := strings.Cut(v[len("bytes "):], "/")
	if !ok || total == "*" {
		return -1
	}
	n, err := strconv.ParseInt(strings.TrimSpace(total), 10, 64)
	if err != nil || n < 0 {
		return -1
	}
	return n
}
