package convert

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // webp decode support for imaging.Open

	"github.com/fileconv/file-converter/internal/ffmpeg"
	"github.com/fileconv/file-converter/internal/format"
	"github.com/fileconv/file-converter/internal/model"
)

// Video codec settings per target container
const (
	VideoCodecH264 = "libx264"
	VideoCodecVP9  = "libvpx-vp9"
	VideoPreset    = "medium"
	VideoCRFH264   = "23"
	VideoCRFVP9    = "30"
	AudioCodecAAC  = "aac"
	AudioCodecOpus = "libopus"
	ImageCodecWebP = "libwebp"
	ImageCodecPNG  = "png"
)

// GIF encoding settings. A palette pass followed by a paletteuse pass gives
// far better colors than a direct gif encode.
const (
	DefaultMaxGIFDuration = 15.0
	GIFFilter             = "fps=10,scale=480:-1:flags=lanczos"
	PaletteFileName       = "palette.png"
	PaletteTempPattern    = "file-converter-gif-*"
)

// JPEG output quality for library-side image conversions.
const JPEGQuality = 95

// IcoSizes are the icon resolutions embedded into a produced .ico file,
// smallest first.
var IcoSizes = []int{16, 32, 48, 64, 128, 256}

// Image targets that cannot carry an alpha channel; transparent sources are
// flattened onto white before encoding.
var opaqueImageTargets = map[string]bool{
	"jpg": true, "jpeg": true, "bmp": true,
}

// Image formats handled by the imaging library on both sides. webp has no
// library encoder and ico needs multi-resolution output, so conversions
// touching either go through ffmpeg instead.
var libraryImageFormats = map[string]bool{
	"jpg": true, "jpeg": true, "png": true,
	"gif": true, "bmp": true, "tiff": true,
}

// ToolInvoker performs conversions using the imaging library for plain image
// work and ffmpeg for everything else.
type ToolInvoker struct {
	Runner *ffmpeg.Runner
}

// NewToolInvoker creates an invoker backed by the given ffmpeg runner.
func NewToolInvoker(runner *ffmpeg.Runner) *ToolInvoker {
	return &ToolInvoker{Runner: runner}
}

// Invoke converts one file. The category decides the tool options; opts
// carries category-specific parameters such as the GIF duration cap.
func (ti *ToolInvoker) Invoke(ctx context.Context, category model.Category, inputPath, outputPath, target string, opts model.Options) error {
	target = format.Normalize(target)

	switch category {
	case model.CategoryImage:
		return ti.convertImage(ctx, inputPath, outputPath, target)
	case model.CategoryAudio:
		return ti.Runner.Convert(ctx, inputPath, outputPath, nil)
	case model.CategoryVideo:
		return ti.convertVideo(ctx, inputPath, outputPath, target, opts)
	default:
		return fmt.Errorf("unknown media category: %q", category)
	}
}

// convertImage routes an image conversion. Plain raster pairs stay in-process;
// webp output and ico on either side require ffmpeg.
func (ti *ToolInvoker) convertImage(ctx context.Context, inputPath, outputPath, target string) error {
	sourceExt := format.Normalize(filepath.Ext(inputPath))

	if target == "ico" {
		return ti.Runner.Convert(ctx, inputPath, outputPath, icoArgs())
	}
	if target == "webp" || sourceExt == "ico" {
		var extra []string
		if target == "webp" {
			extra = []string{"-c:v", ImageCodecWebP}
		}
		return ti.Runner.Convert(ctx, inputPath, outputPath, extra)
	}

	return convertImageInProcess(inputPath, outputPath, target)
}

// convertImageInProcess decodes, optionally flattens, and re-encodes an image
// without spawning an external tool.
func convertImageInProcess(inputPath, outputPath, target string) error {
	img, err := imaging.Open(inputPath, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}

	if opaqueImageTargets[target] {
		img = flattenOnWhite(img)
	}

	if err := imaging.Save(img, outputPath, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// flattenOnWhite composites an image over a white background, discarding any
// alpha channel.
func flattenOnWhite(img image.Image) image.Image {
	bounds := img.Bounds()
	bg := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Point{}, 1.0)
}

// convertVideo picks codec options for the target container. GIF output runs
// a two-pass palette pipeline.
func (ti *ToolInvoker) convertVideo(ctx context.Context, inputPath, outputPath, target string, opts model.Options) error {
	if target == format.GIFTarget {
		return ti.convertVideoToGIF(ctx, inputPath, outputPath, opts)
	}
	return ti.Runner.Convert(ctx, inputPath, outputPath, videoEncodeArgs(target))
}

// convertVideoToGIF runs the palettegen/paletteuse pipeline. The source is
// truncated to the configured duration cap so an accidental right-click on a
// feature-length file cannot produce a gigabyte GIF.
func (ti *ToolInvoker) convertVideoToGIF(ctx context.Context, inputPath, outputPath string, opts model.Options) error {
	maxDuration := opts.MaxGIFDuration
	if maxDuration <= 0 {
		maxDuration = DefaultMaxGIFDuration
	}

	// A failed probe falls back to the cap; ffmpeg stops at end of input
	// anyway when -t exceeds the source.
	if probed, err := ti.Runner.Duration(ctx, inputPath); err == nil {
		maxDuration = gifEncodeDuration(probed, maxDuration)
	}

	tempDir, err := os.MkdirTemp("", PaletteTempPattern)
	if err != nil {
		return fmt.Errorf("failed to create palette directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	palettePath := filepath.Join(tempDir, PaletteFileName)

	if err := ti.Runner.Convert(ctx, inputPath, palettePath, gifPassOneArgs(maxDuration)); err != nil {
		return fmt.Errorf("palette generation failed: %w", err)
	}

	if err := ti.Runner.Convert(ctx, inputPath, outputPath, gifPassTwoArgs(palettePath, maxDuration)); err != nil {
		return fmt.Errorf("gif encoding failed: %w", err)
	}

	return nil
}

// gifEncodeDuration returns how many seconds of the source to encode: the
// whole source when it fits under the cap, the cap otherwise.
func gifEncodeDuration(sourceDuration, maxDuration float64) float64 {
	if sourceDuration > 0 && sourceDuration < maxDuration {
		return sourceDuration
	}
	return maxDuration
}

// videoEncodeArgs returns codec options for a video target container.
// Containers without an explicit entry use the tool's default codecs.
func videoEncodeArgs(target string) []string {
	switch target {
	case "mp4", "mov":
		return []string{
			"-c:v", VideoCodecH264,
			"-preset", VideoPreset,
			"-crf", VideoCRFH264,
			"-c:a", AudioCodecAAC,
		}
	case "webm":
		return []string{
			"-c:v", VideoCodecVP9,
			"-crf", VideoCRFVP9,
			"-b:v", "0",
			"-c:a", AudioCodecOpus,
		}
	default:
		return nil
	}
}

// gifPassOneArgs builds the palette generation pass.
func gifPassOneArgs(maxDuration float64) []string {
	return []string{
		"-t", formatDuration(maxDuration),
		"-vf", GIFFilter + ",palettegen",
	}
}

// gifPassTwoArgs builds the encoding pass that maps frames through the
// generated palette.
func gifPassTwoArgs(palettePath string, maxDuration float64) []string {
	return []string{
		"-i", palettePath,
		"-t", formatDuration(maxDuration),
		"-filter_complex", GIFFilter + "[x];[x][1:v]paletteuse",
	}
}

// icoArgs builds the filter graph that scales the source into every icon
// resolution and maps each scaled stream into the ico container.
func icoArgs() []string {
	graph := fmt.Sprintf("split=%d", len(IcoSizes))
	for i := range IcoSizes {
		graph += fmt.Sprintf("[s%d]", i)
	}
	for i, size := range IcoSizes {
		graph += fmt.Sprintf(";[s%d]scale=%d:%d:flags=lanczos[o%d]", i, size, size, i)
	}

	args := []string{"-filter_complex", graph}
	for i := range IcoSizes {
		args = append(args, "-map", fmt.Sprintf("[o%d]", i))
	}
	return append(args, "-c:v", ImageCodecPNG)
}

func formatDuration(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
