// Package ffmpeg locates the ffmpeg/ffprobe binary pair and wraps single
// synchronous invocations of them. It owns no conversion policy: callers pass
// the category-specific arguments and get back success or the captured
// diagnostic output.
package ffmpeg
