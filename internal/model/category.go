package model

// Category classifies a media file by its extension and selects the
// conversion tool options used for it.
type Category string

const (
	CategoryImage Category = "image"
	CategoryAudio Category = "audio"
	CategoryVideo Category = "video"
)

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}
