package model

import (
	"strings"
	"time"
)

// ConversionTask represents a single file conversion tracked by the async
// conversion service. Tasks belonging to one user action share a BatchID.
type ConversionTask struct {
	ID           string
	BatchID      string
	InputPath    string
	OutputPath   string // path of the produced file, set on completion
	TargetFormat string
	Category     Category
	Status       TaskStatus
	LastError    string // last error message if any
	StartedAt    time.Time
	FinishedAt   time.Time
}

// GetDisplayName returns the input file name without its directory, for
// rendering in task rows.
func (ct *ConversionTask) GetDisplayName() string {
	if ct.InputPath == "" {
		return ""
	}

	// Extract just the filename without path (support both / and \ separators)
	parts := strings.FieldsFunc(ct.InputPath, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return ct.InputPath
	}
	return parts[len(parts)-1]
}

// Result converts a finished task into a ConversionResult for display and
// history recording.
func (ct *ConversionTask) Result() ConversionResult {
	return ConversionResult{
		InputPath:  ct.InputPath,
		OutputPath: ct.OutputPath,
		Success:    ct.Status == TaskStatusCompleted,
		Error:      ct.LastError,
	}
}
