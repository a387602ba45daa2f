package media

// ItemID identifies a media item in the host player's state.
// The empty ItemID means "no identifier".
type ItemID string

// IsZero reports whether id is the "no identifier" sentinel.
func (id ItemID) IsZero() bool {
	return id == ""
}

func (id ItemID) String() string {
	return string(id)
}

// ContentType discriminates the kind of a media item.
type ContentType string

// Known content types.
const (
	ContentTypeTrack ContentType = "track"
	ContentTypeVideo ContentType = "video"
	ContentTypeAlbum ContentType = "album"
)

// Item is a playable item as reported by the host player.
type Item struct {
	ID           ItemID
	ContentType  ContentType
	Title        string
	Duration     int // seconds
	AudioQuality AudioQuality
	// MediaTags lists the quality tags advertised for the item,
	// e.g. "LOSSLESS", "HIRES_LOSSLESS", "MQA", "DOLBY_ATMOS".
	MediaTags []string
}

// IsTrack reports whether the item is a track.
func (i *Item) IsTrack() bool {
	return i != nil && i.ContentType == ContentTypeTrack
}

// MediaItem wraps an item in the host's bulk state snapshot.
// Item may be nil for entries the host has not loaded yet.
type MediaItem struct {
	Item *Item
}
