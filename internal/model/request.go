package model

// Options carries category-specific conversion parameters.
type Options struct {
	// MaxGIFDuration caps, in seconds, how much of a video source is encoded
	// when converting to an animated GIF. Zero means "use the configured
	// default".
	MaxGIFDuration float64
}

// ConversionRequest describes one file to convert. A batch shares one target
// format across all its requests. Requests are immutable once dispatched.
type ConversionRequest struct {
	InputPath    string
	TargetFormat string // extension without dot, e.g. "webp"; empty selects the category default
	Options      Options
}
