package convert

import (
	"context"

	"github.com/fileconv/file-converter/internal/model"
)

// Invoker performs a single file conversion. One Invoke call converts one
// input to one output and returns only after the conversion finished or
// failed; it is never retried.
type Invoker interface {
	Invoke(ctx context.Context, category model.Category, inputPath, outputPath, target string, opts model.Options) error
}

// Converter defines the interface for the asynchronous conversion service
// used by the UI.
type Converter interface {
	SetUpdateCallback(func(*model.ConversionTask))
	StartBatch(paths []string, target string, opts model.Options) ([]*model.ConversionTask, error)
	StopBatch(batchID string) error
	GetTask(taskID string) (*model.ConversionTask, bool)
	GetBatchTasks(batchID string) []*model.ConversionTask
}
