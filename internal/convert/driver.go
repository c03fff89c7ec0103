package convert

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fileconv/file-converter/internal/format"
	"github.com/fileconv/file-converter/internal/model"
)

// Driver processes a batch of conversion requests sequentially. Each input
// yields exactly one result, in input order; a failure on one file never
// prevents the remaining files from being attempted.
type Driver struct {
	invoker Invoker
}

// NewDriver creates a batch driver over the given invoker.
func NewDriver(invoker Invoker) *Driver {
	return &Driver{invoker: invoker}
}

// Convert runs the batch. A canceled context fails the remaining requests
// with the context error; files already converted keep their results.
func (d *Driver) Convert(ctx context.Context, requests []model.ConversionRequest) []model.ConversionResult {
	results := make([]model.ConversionResult, 0, len(requests))

	for _, req := range requests {
		if err := ctx.Err(); err != nil {
			results = append(results, model.Failed(req.InputPath, err))
			continue
		}
		results = append(results, d.convertOne(ctx, req))
	}

	return results
}

// convertOne validates and converts a single request.
func (d *Driver) convertOne(ctx context.Context, req model.ConversionRequest) model.ConversionResult {
	ext := format.Normalize(filepath.Ext(req.InputPath))

	target := format.Normalize(req.TargetFormat)
	if target == "" {
		if category, ok := format.Lookup(ext); ok {
			target = format.DefaultTarget(category)
		}
	}

	category, err := format.Validate(ext, target)
	if err != nil {
		return model.Failed(req.InputPath, err)
	}

	if ext == target {
		return model.SkippedResult(req.InputPath)
	}

	outputPath := OutputPath(req.InputPath, target)
	if err := d.invoker.Invoke(ctx, category, req.InputPath, outputPath, target, req.Options); err != nil {
		return model.Failed(req.InputPath, err)
	}

	return model.Succeeded(req.InputPath, outputPath)
}

// OutputPath derives the output file path: same directory and base name as
// the input, with the target extension.
func OutputPath(inputPath, target string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "." + format.Normalize(target)
}
