package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/fileconv/file-converter/internal/config"
	"github.com/fileconv/file-converter/internal/convert"
	"github.com/fileconv/file-converter/internal/format"
	"github.com/fileconv/file-converter/internal/model"
	"github.com/fileconv/file-converter/internal/platform"
	"github.com/fileconv/file-converter/internal/registry"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	convertSvc   convert.Converter
	cfg          *config.Config
	localization *Localization

	// File selection
	selectedFiles  []string
	fileCountLabel *widget.Label
	addBtn         *widget.Button
	clearBtn       *widget.Button

	// Conversion controls
	formatSelect *widget.Select
	convertBtn   *widget.Button
	stopBtn      *widget.Button

	// Task list
	taskList *widget.List
	tasks    []*model.ConversionTask
	tasksMu  sync.Mutex

	currentBatchID string

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, convertSvc convert.Converter, cfg *config.Config) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(cfg.Language)

	ui := &RootUI{
		window:       window,
		app:          app,
		convertSvc:   convertSvc,
		cfg:          cfg,
		localization: localization,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	// Set up callback for conversion updates
	ui.convertSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.addBtn = widget.NewButton(ui.localization.GetText(KeyAddFiles), ui.onAddFileClick)
	ui.clearBtn = widget.NewButton(ui.localization.GetText(KeyClearFiles), ui.onClearFilesClick)
	ui.clearBtn.Importance = widget.LowImportance

	ui.fileCountLabel = widget.NewLabel("")
	ui.updateFileCountLabel()

	ui.formatSelect = widget.NewSelect(nil, nil)
	ui.formatSelect.PlaceHolder = ui.localization.GetText(KeyDefaultPerType)

	ui.convertBtn = widget.NewButton(ui.localization.GetText(KeyConvert), ui.onConvertClick)
	ui.convertBtn.Importance = widget.HighImportance

	ui.stopBtn = widget.NewButton(ui.localization.GetText(KeyStop), ui.onStopClick)
	ui.stopBtn.Disable()

	// Create settings button
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	// Create logo
	logo, err := LoadLogoResource()
	var logoImage *canvas.Image
	if err == nil {
		logoImage = canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
	}

	// Top panel: file selection on the left, conversion controls on the right
	controls := container.NewHBox(ui.formatSelect, ui.convertBtn, ui.stopBtn)
	var leftCluster *fyne.Container
	if logoImage != nil {
		leftCluster = container.NewHBox(logoImage, settingsBtn, ui.addBtn, ui.clearBtn)
	} else {
		leftCluster = container.NewHBox(settingsBtn, ui.addBtn, ui.clearBtn)
	}
	topPanel := container.NewBorder(nil, nil, leftCluster, controls, ui.fileCountLabel)

	// Create notification panel under the controls (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	topCombined := container.NewVBox(topPanel, ui.notificationContainer)

	// Create task list
	ui.taskList = widget.NewList(
		func() int {
			ui.tasksMu.Lock()
			defer ui.tasksMu.Unlock()
			return len(ui.tasks)
		},
		func() fyne.CanvasObject { return ui.createTaskItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateTaskItem(id, obj) },
	)

	content := container.NewBorder(
		topCombined, // top
		nil,         // bottom
		nil,         // left
		nil,         // right
		ui.taskList, // center
	)

	ui.window.SetContent(content)
	ui.window.SetOnDropped(ui.onFilesDropped)

	log.Printf("UI setup completed successfully")
}

// onFilesDropped adds files dragged onto the window, same as picking them
// through the file dialog. Unsupported files are reported and skipped.
func (ui *RootUI) onFilesDropped(_ fyne.Position, uris []fyne.URI) {
	added := 0
	for _, uri := range uris {
		path := uri.Path()
		if _, ok := format.Lookup(filepath.Ext(path)); !ok {
			ui.showNotification(ui.localization.GetText(KeyUnsupportedFile)+": "+path, false)
			continue
		}
		ui.selectedFiles = append(ui.selectedFiles, path)
		added++
	}

	if added == 0 {
		return
	}
	ui.updateFileCountLabel()
	ui.updateFormatOptions()
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	installItem := fyne.NewMenuItem(ui.localization.GetText(KeyInstallMenu), ui.onInstallContextMenu)
	removeItem := fyne.NewMenuItem(ui.localization.GetText(KeyRemoveMenu), ui.onRemoveContextMenu)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, installItem, removeItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)

	ui.cfg.Language = langCode
	if err := config.Save(*ui.cfg); err != nil {
		log.Printf("Failed to persist language change: %v", err)
	}

	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.addBtn.SetText(ui.localization.GetText(KeyAddFiles))
	ui.clearBtn.SetText(ui.localization.GetText(KeyClearFiles))
	ui.convertBtn.SetText(ui.localization.GetText(KeyConvert))
	ui.stopBtn.SetText(ui.localization.GetText(KeyStop))
	ui.formatSelect.PlaceHolder = ui.localization.GetText(KeyDefaultPerType)
	ui.updateFileCountLabel()

	ui.taskList.Refresh()
}

// onAddFileClick opens the file picker. Each pick adds one file; the picker
// only offers supported extensions.
func (ui *RootUI) onAddFileClick() {
	extensions := make([]string, 0, len(format.SourceExtensions()))
	for _, ext := range format.SourceExtensions() {
		extensions = append(extensions, "."+ext)
	}

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if _, ok := format.Lookup(filepath.Ext(path)); !ok {
			ui.showNotification(ui.localization.GetText(KeyUnsupportedFile)+": "+path, false)
			return
		}

		ui.selectedFiles = append(ui.selectedFiles, path)
		ui.updateFileCountLabel()
		ui.updateFormatOptions()
	}, ui.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(extensions))
	fileDialog.Show()
}

// onClearFilesClick clears the current file selection.
func (ui *RootUI) onClearFilesClick() {
	ui.selectedFiles = nil
	ui.updateFileCountLabel()
	ui.updateFormatOptions()
}

// updateFileCountLabel reflects the number of selected files.
func (ui *RootUI) updateFileCountLabel() {
	if ui.fileCountLabel == nil {
		return
	}
	ui.fileCountLabel.SetText(fmt.Sprintf("%d %s",
		len(ui.selectedFiles), ui.localization.GetText(KeyFilesSelected)))
}

// updateFormatOptions offers the targets of the selection's category. A mixed
// selection converts each file to its category default instead.
func (ui *RootUI) updateFormatOptions() {
	category, uniform := ui.selectionCategory()

	if !uniform {
		ui.formatSelect.Options = nil
		ui.formatSelect.ClearSelected()
		ui.formatSelect.Refresh()
		return
	}

	ui.formatSelect.Options = format.Targets(category)
	ui.formatSelect.Refresh()
}

// selectionCategory returns the shared category of the selected files, and
// whether they in fact share one.
func (ui *RootUI) selectionCategory() (model.Category, bool) {
	var category model.Category
	for _, path := range ui.selectedFiles {
		fileCategory, ok := format.Lookup(filepath.Ext(path))
		if !ok {
			continue
		}
		if category == "" {
			category = fileCategory
			continue
		}
		if category != fileCategory {
			return "", false
		}
	}
	return category, category != ""
}

// onConvertClick starts converting the selected files.
func (ui *RootUI) onConvertClick() {
	if len(ui.selectedFiles) == 0 {
		ui.showNotification(ui.localization.GetText(KeyNoFilesSelected), false)
		return
	}

	target := ui.formatSelect.Selected
	opts := model.Options{MaxGIFDuration: ui.cfg.MaxGIFDuration}

	tasks, err := ui.convertSvc.StartBatch(ui.selectedFiles, target, opts)
	if err != nil {
		ui.showNotification("Error: "+err.Error(), false)
		return
	}

	log.Printf("Started batch %s with %d files (target=%q)", tasks[0].BatchID, len(tasks), target)

	ui.tasksMu.Lock()
	ui.tasks = append(ui.tasks, tasks...)
	ui.tasksMu.Unlock()

	ui.currentBatchID = tasks[0].BatchID
	ui.stopBtn.Enable()

	ui.selectedFiles = nil
	ui.updateFileCountLabel()
	ui.updateFormatOptions()

	ui.showNotification(ui.localization.GetText(KeyConversionStarted), true)
	ui.taskList.Refresh()
}

// onStopClick cancels the running batch.
func (ui *RootUI) onStopClick() {
	if ui.currentBatchID == "" {
		return
	}
	if err := ui.convertSvc.StopBatch(ui.currentBatchID); err != nil {
		log.Printf("Failed to stop batch %s: %v", ui.currentBatchID, err)
	}
}

// showNotification displays a message in the notification panel under the
// controls. When spinning is true, a spinner indicates background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.cfg, ui.window, ui.localization, func() {
		ui.localization.SetLanguage(ui.cfg.Language)
		ui.refreshUITexts()
		ui.createMenu()
	}).Show()
}

// onInstallContextMenu installs the Explorer context-menu entries.
func (ui *RootUI) onInstallContextMenu() {
	go func() {
		exePath, err := platform.ExecutablePath()
		if err != nil {
			ui.showNotification("Error: "+err.Error(), false)
			return
		}

		manager, err := registry.NewManager()
		if err != nil {
			ui.showNotification("Error: "+err.Error(), false)
			return
		}

		if err := manager.Setup(exePath, true); err != nil {
			ui.showNotification("Error: "+err.Error(), false)
			return
		}

		ui.showNotification(ui.localization.GetText(KeyMenuInstalled), false)
	}()
}

// onRemoveContextMenu removes the Explorer context-menu entries.
func (ui *RootUI) onRemoveContextMenu() {
	go func() {
		manager, err := registry.NewManager()
		if err != nil {
			ui.showNotification("Error: "+err.Error(), false)
			return
		}

		if err := manager.RemoveAll(); err != nil {
			ui.showNotification("Error: "+err.Error(), false)
			return
		}

		ui.showNotification(ui.localization.GetText(KeyMenuRemoved), false)
	}()
}

// createTaskItem creates a new task item widget
func (ui *RootUI) createTaskItem() fyne.CanvasObject {
	taskRow := NewTaskRow(nil, ui.localization)

	taskRow.SetCallbacks(
		ui.onRevealFile,
		ui.onOpenFile,
		ui.onCopyPath,
	)

	return taskRow
}

// updateTaskItem updates a task item with current data
func (ui *RootUI) updateTaskItem(id widget.ListItemID, item fyne.CanvasObject) {
	ui.tasksMu.Lock()
	if id >= len(ui.tasks) {
		ui.tasksMu.Unlock()
		return
	}
	task := ui.tasks[id]
	ui.tasksMu.Unlock()

	if taskRow, ok := item.(*TaskRow); ok {
		taskRow.SetCallbacks(
			ui.onRevealFile,
			ui.onOpenFile,
			ui.onCopyPath,
		)
		taskRow.UpdateTask(task)
	}
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" {
		return
	}

	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onOpenFile handles opening a converted file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if filePath == "" {
		return
	}

	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onCopyPath handles copying file path to clipboard
func (ui *RootUI) onCopyPath(filePath string) {
	if filePath == "" {
		return
	}

	ui.app.Clipboard().SetContent(filePath)
	widget.ShowPopUp(widget.NewLabel("Path copied to clipboard"), ui.window.Canvas())
}

// onTaskUpdate handles task updates from the conversion service
func (ui *RootUI) onTaskUpdate(task *model.ConversionTask) {
	log.Printf("Task update: id=%s status=%s output=%s", task.ID, task.Status, task.OutputPath)

	if task.Status == model.TaskStatusCompleted {
		ui.sendCompletionNotification(task)
	}

	batchFinished := ui.isBatchFinished(task.BatchID)

	fyne.Do(func() {
		ui.taskList.Refresh()

		if batchFinished && task.BatchID == ui.currentBatchID {
			ui.stopBtn.Disable()
			ui.showNotification(ui.localization.GetText(KeyConversionDone), false)
		}
	})
}

// isBatchFinished reports whether every task of a batch reached a final state.
func (ui *RootUI) isBatchFinished(batchID string) bool {
	tasks := ui.convertSvc.GetBatchTasks(batchID)
	for _, task := range tasks {
		if !task.Status.IsFinished() {
			return false
		}
	}
	return len(tasks) > 0
}

// sendCompletionNotification sends a system notification for a finished
// conversion and shows an in-app toast with file actions.
func (ui *RootUI) sendCompletionNotification(task *model.ConversionTask) {
	ui.app.SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyConversionDone),
		Content: task.GetDisplayName(),
	})

	ui.showToastNotification(task)
}

// showToastNotification shows an in-app toast notification with action buttons
func (ui *RootUI) showToastNotification(task *model.ConversionTask) {
	fyne.Do(func() {
		titleLabel := widget.NewLabel(ui.localization.GetText(KeyConversionDone))
		titleLabel.TextStyle = fyne.TextStyle{Bold: true}

		messageLabel := widget.NewLabel(task.GetDisplayName())
		messageLabel.Truncation = fyne.TextTruncateEllipsis

		revealBtn := widget.NewButton("Reveal", func() {
			if task.OutputPath != "" {
				ui.onRevealFile(task.OutputPath)
			}
		})
		revealBtn.Importance = widget.HighImportance

		openBtn := widget.NewButton(ui.localization.GetText(KeyOpen), func() {
			if task.OutputPath != "" {
				ui.onOpenFile(task.OutputPath)
			}
		})
		openBtn.Importance = widget.MediumImportance

		var toastPopup *widget.PopUp
		closeBtn := widget.NewButton(IconClose, func() {
			if toastPopup != nil {
				toastPopup.Hide()
			}
		})
		closeBtn.Importance = widget.LowImportance

		header := container.NewBorder(nil, nil, titleLabel, closeBtn)
		actions := container.NewHBox(revealBtn, openBtn)
		content := container.NewVBox(
			header,
			messageLabel,
			actions,
		)

		toastPopup = widget.NewPopUp(content, ui.window.Canvas())

		// Position in top-right corner
		canvasSize := ui.window.Canvas().Size()
		toastSize := fyne.NewSize(ToastWidth, ToastHeight)
		toastPos := fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin)

		toastPopup.Resize(toastSize)
		toastPopup.Move(toastPos)
		toastPopup.Show()

		// Auto-hide after configured time
		go func() {
			time.Sleep(ToastAutoHide)
			if toastPopup != nil {
				fyne.Do(func() { toastPopup.Hide() })
			}
		}()
	})
}
