package media

// AudioQuality is a streaming quality level.
// Values never contain '-', which keeps composite cache keys unambiguous.
type AudioQuality string

// Streaming quality levels, lowest first.
const (
	QualityLow           AudioQuality = "LOW"
	QualityHigh          AudioQuality = "HIGH"
	QualityLossless      AudioQuality = "LOSSLESS"
	QualityHiRes         AudioQuality = "HI_RES"
	QualityHiResLossless AudioQuality = "HI_RES_LOSSLESS"
)

// AudioQualities lists every known quality level, lowest first.
var AudioQualities = []AudioQuality{
	QualityLow,
	QualityHigh,
	QualityLossless,
	QualityHiRes,
	QualityHiResLossless,
}

// Valid reports whether q is a known quality level.
func (q AudioQuality) Valid() bool {
	for _, known := range AudioQualities {
		if q == known {
			return true
		}
	}
	return false
}

func (q AudioQuality) String() string {
	return string(q)
}

// PlaybackContext is the host's description of what is playing right now.
type PlaybackContext struct {
	ActualProductID    ItemID
	ActualAudioQuality AudioQuality
	// ActualDuration is in seconds.
	ActualDuration float64
}
