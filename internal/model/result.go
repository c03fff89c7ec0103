package model

// ConversionResult is the per-file outcome of a batch conversion. The driver
// produces exactly one result per input, in input order.
type ConversionResult struct {
	InputPath  string
	OutputPath string // empty when no output was produced
	Success    bool
	Error      string // diagnostic text, verbatim from the tool where available
	Skipped    bool   // input was already in the requested format
}

// Succeeded returns a successful result for the given input/output pair.
func Succeeded(inputPath, outputPath string) ConversionResult {
	return ConversionResult{InputPath: inputPath, OutputPath: outputPath, Success: true}
}

// SkippedResult returns a success result for an input that was already in the
// requested format. No tool is invoked for such inputs.
func SkippedResult(inputPath string) ConversionResult {
	return ConversionResult{InputPath: inputPath, OutputPath: inputPath, Success: true, Skipped: true}
}

// Failed returns a failed result carrying the error text.
func Failed(inputPath string, err error) ConversionResult {
	return ConversionResult{InputPath: inputPath, Success: false, Error: err.Error()}
}
