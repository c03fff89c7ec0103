package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fileconv/file-converter/internal/format"
	"github.com/fileconv/file-converter/internal/model"
)

// ID prefixes for tasks and batches
const (
	TaskIDPrefix  = "convert-"
	BatchIDPrefix = "batch-"
)

// Service runs conversion batches in the background and tracks their tasks
// for the UI.
type Service struct {
	invoker    Invoker
	tasks      map[string]*model.ConversionTask
	tasksMutex sync.RWMutex
	cancels    map[string]context.CancelFunc // keyed by batch ID
	onUpdate   func(*model.ConversionTask)   // callback for UI updates
}

// NewService creates a new conversion service over the given invoker.
func NewService(invoker Invoker) Converter {
	return &Service{
		invoker: invoker,
		tasks:   make(map[string]*model.ConversionTask),
		cancels: make(map[string]context.CancelFunc),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ConversionTask)) {
	s.onUpdate = callback
}

// StartBatch validates the inputs, creates one task per file and starts the
// batch in the background. All files in a batch convert to the same target.
func (s *Service) StartBatch(paths []string, target string, opts model.Options) ([]*model.ConversionTask, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to convert")
	}

	batchID := generateID(BatchIDPrefix)
	tasks := make([]*model.ConversionTask, 0, len(paths))

	s.tasksMutex.Lock()
	for _, path := range paths {
		ext := format.Normalize(filepath.Ext(path))
		category, _ := format.Lookup(ext)

		taskTarget := format.Normalize(target)
		if taskTarget == "" {
			taskTarget = format.DefaultTarget(category)
		}

		task := &model.ConversionTask{
			ID:           generateID(TaskIDPrefix),
			BatchID:      batchID,
			InputPath:    path,
			TargetFormat: taskTarget,
			Category:     category,
			Status:       model.TaskStatusPending,
			StartedAt:    time.Now(),
		}
		s.tasks[task.ID] = task
		tasks = append(tasks, task)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancels[batchID] = cancel
	s.tasksMutex.Unlock()

	go s.runBatch(ctx, batchID, tasks, opts)

	return tasks, nil
}

// StopBatch cancels a running batch. Tasks already finished keep their
// results; the task currently converting is interrupted.
func (s *Service) StopBatch(batchID string) error {
	s.tasksMutex.Lock()
	cancel, exists := s.cancels[batchID]
	if exists {
		for _, task := range s.tasks {
			if task.BatchID == batchID && !task.Status.IsFinished() {
				task.Status = model.TaskStatusStopping
			}
		}
	}
	s.tasksMutex.Unlock()

	if !exists {
		return fmt.Errorf("conversion batch not found: %s", batchID)
	}

	cancel()
	return nil
}

// GetTask returns a conversion task by ID
func (s *Service) GetTask(taskID string) (*model.ConversionTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	return task, exists
}

// GetBatchTasks returns all tasks belonging to a batch.
func (s *Service) GetBatchTasks(batchID string) []*model.ConversionTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	var tasks []*model.ConversionTask
	for _, task := range s.tasks {
		if task.BatchID == batchID {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

// runBatch converts the batch's files sequentially.
func (s *Service) runBatch(ctx context.Context, batchID string, tasks []*model.ConversionTask, opts model.Options) {
	defer func() {
		s.tasksMutex.Lock()
		delete(s.cancels, batchID)
		s.tasksMutex.Unlock()
	}()

	for _, task := range tasks {
		if ctx.Err() != nil {
			s.setTaskStatus(task, model.TaskStatusStopped)
			continue
		}
		s.runTask(ctx, task, opts)
	}
}

// runTask converts a single file and records the outcome on its task.
func (s *Service) runTask(ctx context.Context, task *model.ConversionTask, opts model.Options) {
	s.setTaskStatus(task, model.TaskStatusStarting)

	ext := format.Normalize(filepath.Ext(task.InputPath))
	category, err := format.Validate(ext, task.TargetFormat)
	if err != nil {
		s.setTaskError(task, err)
		return
	}

	if _, err := os.Stat(task.InputPath); err != nil {
		s.setTaskError(task, fmt.Errorf("input file does not exist: %s", task.InputPath))
		return
	}

	outputPath := OutputPath(task.InputPath, task.TargetFormat)

	if ext == task.TargetFormat {
		s.tasksMutex.Lock()
		task.OutputPath = task.InputPath
		task.Status = model.TaskStatusCompleted
		task.FinishedAt = time.Now()
		s.tasksMutex.Unlock()
		s.notifyUpdate(task)
		return
	}

	s.setTaskStatus(task, model.TaskStatusConverting)

	err = s.invoker.Invoke(ctx, category, task.InputPath, outputPath, task.TargetFormat, opts)

	s.tasksMutex.Lock()
	if ctx.Err() != nil {
		task.Status = model.TaskStatusStopped
		// Remove partial output file
		os.Remove(outputPath)
	} else if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
		os.Remove(outputPath)
	} else {
		task.Status = model.TaskStatusCompleted
		task.OutputPath = outputPath
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// setTaskStatus updates a task status under lock and notifies the UI.
func (s *Service) setTaskStatus(task *model.ConversionTask, status model.TaskStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	if status.IsFinished() {
		task.FinishedAt = time.Now()
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// setTaskError sets an error state for a task
func (s *Service) setTaskError(task *model.ConversionTask, err error) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ConversionTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateID generates a unique ID using UUID v7 for time ordering.
func generateID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano())
	}
	return prefix + id.String()
}
