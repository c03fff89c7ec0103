package ui

import (
	"log"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/fileconv/file-converter/internal/config"
	"github.com/fileconv/file-converter/internal/format"
	"github.com/fileconv/file-converter/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	cfg          *config.Config
	window       fyne.Window
	localization *Localization
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	gifDurationEntry  *widget.Entry
	imageTargetSelect *widget.Select
	audioTargetSelect *widget.Select
	videoTargetSelect *widget.Select
	ffmpegEntry       *widget.Entry
	ffprobeEntry      *widget.Entry
	fileLoggingCheck  *widget.Check
	historyCheck      *widget.Check
	languageSelect    *widget.Select
}

// NewSettingsDialog creates a new settings dialog. The config is edited in
// place and persisted on save.
func NewSettingsDialog(cfg *config.Config, window fyne.Window, localization *Localization, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		cfg:          cfg,
		window:       window,
		localization: localization,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	loc := sd.localization

	sd.gifDurationEntry = widget.NewEntry()
	sd.gifDurationEntry.SetPlaceHolder("15")

	sd.imageTargetSelect = widget.NewSelect(format.Targets(model.CategoryImage), nil)
	sd.audioTargetSelect = widget.NewSelect(format.Targets(model.CategoryAudio), nil)
	sd.videoTargetSelect = widget.NewSelect(format.Targets(model.CategoryVideo), nil)

	sd.ffmpegEntry = widget.NewEntry()
	sd.ffmpegEntry.SetPlaceHolder("ffmpeg")
	sd.ffprobeEntry = widget.NewEntry()
	sd.ffprobeEntry.SetPlaceHolder("ffprobe")

	sd.fileLoggingCheck = widget.NewCheck(loc.GetText(KeyFileLogging), nil)
	sd.historyCheck = widget.NewCheck(loc.GetText(KeyHistoryEnabled), nil)

	languageOptions := []string{}
	for code := range config.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = "Select language"

	form := container.NewVBox(
		widget.NewLabel(loc.GetText(KeyMaxGIFDuration)+":"),
		sd.gifDurationEntry,

		widget.NewLabel(loc.GetText(KeyDefaultImageTarget)+":"),
		sd.imageTargetSelect,

		widget.NewLabel(loc.GetText(KeyDefaultAudioTarget)+":"),
		sd.audioTargetSelect,

		widget.NewLabel(loc.GetText(KeyDefaultVideoTarget)+":"),
		sd.videoTargetSelect,

		widget.NewSeparator(),

		widget.NewLabel(loc.GetText(KeyFFmpegPath)+":"),
		sd.ffmpegEntry,

		widget.NewLabel(loc.GetText(KeyFFprobePath)+":"),
		sd.ffprobeEntry,

		widget.NewSeparator(),

		sd.fileLoggingCheck,
		sd.historyCheck,

		widget.NewLabel(loc.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		loc.GetText(KeySettings),
		loc.GetText(KeySave),
		loc.GetText(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 520))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.gifDurationEntry.SetText(strconv.FormatFloat(sd.cfg.MaxGIFDuration, 'f', -1, 64))
	sd.imageTargetSelect.SetSelected(sd.cfg.DefaultImageTarget)
	sd.audioTargetSelect.SetSelected(sd.cfg.DefaultAudioTarget)
	sd.videoTargetSelect.SetSelected(sd.cfg.DefaultVideoTarget)
	sd.ffmpegEntry.SetText(sd.cfg.FFmpegPath)
	sd.ffprobeEntry.SetText(sd.cfg.FFprobePath)
	sd.fileLoggingCheck.SetChecked(sd.cfg.FileLogging)
	sd.historyCheck.SetChecked(sd.cfg.HistoryEnabled)
	sd.languageSelect.SetSelected(sd.cfg.Language)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if duration, err := strconv.ParseFloat(sd.gifDurationEntry.Text, 64); err == nil && duration > 0 {
		sd.cfg.MaxGIFDuration = duration
	}

	if sd.imageTargetSelect.Selected != "" {
		sd.cfg.DefaultImageTarget = sd.imageTargetSelect.Selected
	}
	if sd.audioTargetSelect.Selected != "" {
		sd.cfg.DefaultAudioTarget = sd.audioTargetSelect.Selected
	}
	if sd.videoTargetSelect.Selected != "" {
		sd.cfg.DefaultVideoTarget = sd.videoTargetSelect.Selected
	}

	sd.cfg.FFmpegPath = sd.ffmpegEntry.Text
	sd.cfg.FFprobePath = sd.ffprobeEntry.Text
	sd.cfg.FileLogging = sd.fileLoggingCheck.Checked
	sd.cfg.HistoryEnabled = sd.historyCheck.Checked

	if sd.languageSelect.Selected != "" {
		sd.cfg.Language = sd.languageSelect.Selected
	}

	if err := config.Save(*sd.cfg); err != nil {
		log.Printf("Failed to save settings: %v", err)
		dialog.ShowError(err, sd.window)
		return
	}

	dialog.ShowInformation(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySettingsSaved),
		sd.window,
	)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
