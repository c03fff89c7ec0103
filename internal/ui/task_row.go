package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/fileconv/file-converter/internal/model"
)

// TaskRow represents a compact conversion task row widget
type TaskRow struct {
	widget.BaseWidget

	task         *model.ConversionTask
	localization *Localization

	// UI components
	titleLabel  *widget.Label
	targetLabel *widget.Label
	statusLabel *widget.Label

	// Action buttons
	revealBtn *widget.Button // reveal in file manager
	playBtn   *widget.Button // open file with default app
	copyBtn   *widget.Button

	// Callbacks
	onReveal   func(filePath string)
	onOpen     func(filePath string)
	onCopyPath func(filePath string)
}

// NewTaskRow creates a new task row widget
func NewTaskRow(task *model.ConversionTask, localization *Localization) *TaskRow {
	if task == nil {
		// Placeholder task to prevent crashes before the first update
		task = &model.ConversionTask{
			ID:     "placeholder",
			Status: model.TaskStatusPending,
		}
	}

	tr := &TaskRow{
		task:         task,
		localization: localization,
	}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	tr.updateFromTask()
	return tr
}

// SetCallbacks sets the action callbacks
func (tr *TaskRow) SetCallbacks(
	onReveal func(filePath string),
	onOpen func(filePath string),
	onCopyPath func(filePath string),
) {
	tr.onReveal = onReveal
	tr.onOpen = onOpen
	tr.onCopyPath = onCopyPath
}

// UpdateTask updates the row with new task data
func (tr *TaskRow) UpdateTask(task *model.ConversionTask) {
	if task == nil {
		return
	}

	tr.task = task
	tr.updateFromTask()
	tr.Refresh()
}

// createUI creates the UI components
func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis
	tr.titleLabel.Alignment = fyne.TextAlignLeading

	tr.targetLabel = widget.NewLabel("")
	tr.targetLabel.Alignment = fyne.TextAlignTrailing
	tr.targetLabel.TextStyle = fyne.TextStyle{Monospace: true}

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing

	// open -> reveal in file manager (Finder/Explorer) and highlight file
	tr.revealBtn = widget.NewButton("open", func() {
		currentTask := tr.task
		if tr.onReveal == nil {
			return
		}
		if !hasRealPath(currentTask.OutputPath) {
			widget.ShowPopUp(widget.NewLabel("File path not available yet"),
				fyne.CurrentApp().Driver().CanvasForObject(tr.revealBtn))
			return
		}
		tr.onReveal(currentTask.OutputPath)
	})
	tr.revealBtn.Importance = widget.MediumImportance

	// play -> open with default app
	tr.playBtn = widget.NewButton("play", func() {
		currentTask := tr.task
		if tr.onOpen != nil && hasRealPath(currentTask.OutputPath) {
			tr.onOpen(currentTask.OutputPath)
		}
	})
	tr.playBtn.Importance = widget.MediumImportance

	tr.copyBtn = widget.NewButton("path", func() {
		currentTask := tr.task
		if tr.onCopyPath != nil && hasRealPath(currentTask.OutputPath) {
			tr.onCopyPath(currentTask.OutputPath)
		}
	})
	tr.copyBtn.Importance = widget.MediumImportance
}

// hasRealPath reports whether a path is set and looks like a file path rather
// than a bare name.
func hasRealPath(path string) bool {
	return path != "" && (strings.Contains(path, "/") || strings.Contains(path, "\\"))
}

// updateFromTask updates UI components based on task state
func (tr *TaskRow) updateFromTask() {
	if tr.task == nil {
		return
	}

	tr.titleLabel.SetText(tr.task.GetDisplayName())
	tr.targetLabel.SetText(ArrowSeparator + tr.task.TargetFormat)

	// Update status label color and text
	switch tr.task.Status {
	case model.TaskStatusError:
		tr.statusLabel.Importance = widget.DangerImportance
		tr.statusLabel.SetText(IconError + " " + tr.task.Status.String())
	case model.TaskStatusCompleted:
		tr.statusLabel.Importance = widget.SuccessImportance
		tr.statusLabel.SetText(tr.task.Status.String())
	case model.TaskStatusConverting, model.TaskStatusStarting:
		tr.statusLabel.Importance = widget.HighImportance
		tr.statusLabel.SetText(IconPlay + " " + tr.task.Status.String())
	case model.TaskStatusPending:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText("⏳ " + tr.task.Status.String())
	case model.TaskStatusStopping, model.TaskStatusStopped:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText("⏹ " + tr.task.Status.String())
	default:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(tr.task.Status.String())
	}

	tr.updateButtons()
}

// updateButtons updates button states based on task status
func (tr *TaskRow) updateButtons() {
	if tr.task == nil {
		return
	}

	// Output actions only make sense once an output file exists
	if tr.task.Status == model.TaskStatusCompleted && hasRealPath(tr.task.OutputPath) {
		tr.revealBtn.Enable()
		tr.playBtn.Enable()
		tr.copyBtn.Enable()
	} else {
		tr.revealBtn.Disable()
		tr.playBtn.Disable()
		tr.copyBtn.Disable()
	}
}

// CreateRenderer creates the widget renderer
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	return &taskRowRenderer{taskRow: tr}
}

// taskRowRenderer renders the task row widget
type taskRowRenderer struct {
	taskRow *TaskRow
	layout  *fyne.Container
}

// Layout arranges the components
func (r *taskRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if r.layout != nil {
		if size.Width < RowMinWidth {
			size.Width = RowMinWidth
		}
		if size.Height < RowMinHeight {
			size.Height = RowMinHeight
		}
		r.layout.Resize(size)
	}
}

// MinSize returns the minimum size
func (r *taskRowRenderer) MinSize() fyne.Size {
	if r.layout != nil {
		return r.layout.MinSize()
	}
	return fyne.NewSize(RowMinWidth, RowMinHeight)
}

// Refresh refreshes the renderer
func (r *taskRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	if r.layout != nil {
		r.layout.Refresh()
	}
}

// Objects returns the container objects
func (r *taskRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *taskRowRenderer) Destroy() {}

// createLayout creates the main layout
func (r *taskRowRenderer) createLayout() {
	tr := r.taskRow

	// Left side: file name with the target format next to it
	leftSide := tr.titleLabel

	// Helper to fix width using a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	rightSide := container.NewHBox(
		fixedWidth(TargetLabelWidth, tr.targetLabel),
		fixedWidth(StatusLabelWidth, tr.statusLabel),
	)

	actionRow := container.NewHBox(
		tr.revealBtn,
		tr.playBtn,
		tr.copyBtn,
	)

	separator := widget.NewSeparator()

	// Buttons pinned to the right edge, status cluster next to them, title
	// takes the remaining space.
	rightCluster := container.NewBorder(nil, nil, nil, actionRow, rightSide)
	mainContent := container.NewBorder(nil, nil, nil, rightCluster, leftSide)

	r.layout = container.NewVBox(
		mainContent,
		separator,
	)

	r.layout.Resize(fyne.NewSize(RowMinWidth, RowDefaultH))
	r.layout.Refresh()
}
