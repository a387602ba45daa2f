package media

// Format is container metadata decoded from the first bytes of a stream.
// Zero fields are unknown.
type Format struct {
	Container     string
	Codec         string
	SampleRate    int // Hz
	BitsPerSample int
	Channels      int
	TotalSamples  uint64
	Duration      float64 // seconds
}
