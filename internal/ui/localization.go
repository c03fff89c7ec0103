package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyAddFiles           = "add_files"
	KeyClearFiles         = "clear_files"
	KeyConvert            = "convert"
	KeyStop               = "stop"
	KeyOpen               = "open"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyTargetFormat       = "target_format"
	KeyDefaultPerType     = "default_per_type"
	KeyMaxGIFDuration     = "max_gif_duration"
	KeyFFmpegPath         = "ffmpeg_path"
	KeyFFprobePath        = "ffprobe_path"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeySettingsSaved      = "settings_saved"
	KeyConversionStarted  = "conversion_started"
	KeyConversionDone     = "conversion_done"
	KeyConversionFailed   = "conversion_failed"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyNoFilesSelected    = "no_files_selected"
	KeyFilesSelected      = "files_selected"
	KeyInstallMenu        = "install_menu"
	KeyRemoveMenu         = "remove_menu"
	KeyMenuInstalled      = "menu_installed"
	KeyMenuRemoved        = "menu_removed"
	KeyUnsupportedFile    = "unsupported_file"
	KeyToolMissing        = "tool_missing"
	KeyFileLogging        = "file_logging"
	KeyHistoryEnabled     = "history_enabled"
	KeyDefaultImageTarget = "default_image_target"
	KeyDefaultAudioTarget = "default_audio_target"
	KeyDefaultVideoTarget = "default_video_target"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "File Converter",
		KeyAddFiles:           "Add Files",
		KeyClearFiles:         "Clear",
		KeyConvert:            "Convert",
		KeyStop:               "Stop",
		KeyOpen:               "Open",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyTargetFormat:       "Target Format",
		KeyDefaultPerType:     "Default per type",
		KeyMaxGIFDuration:     "Max GIF Duration (seconds)",
		KeyFFmpegPath:         "FFmpeg Path",
		KeyFFprobePath:        "FFprobe Path",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyConversionStarted:  "Conversion started",
		KeyConversionDone:     "Conversion completed",
		KeyConversionFailed:   "Conversion failed",
		KeyErrorOpeningFile:   "Error opening file",
		KeyNoFilesSelected:    "Please add files to convert",
		KeyFilesSelected:      "files selected",
		KeyInstallMenu:        "Install Context Menu",
		KeyRemoveMenu:         "Remove Context Menu",
		KeyMenuInstalled:      "Context menu entries installed",
		KeyMenuRemoved:        "Context menu entries removed",
		KeyUnsupportedFile:    "Unsupported file type",
		KeyToolMissing:        "ffmpeg was not found. Install it or set its path in Settings.",
		KeyFileLogging:        "Write log file",
		KeyHistoryEnabled:     "Record conversion history",
		KeyDefaultImageTarget: "Default image target",
		KeyDefaultAudioTarget: "Default audio target",
		KeyDefaultVideoTarget: "Default video target",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Конвертер файлов",
		KeyAddFiles:           "Добавить файлы",
		KeyClearFiles:         "Очистить",
		KeyConvert:            "Конвертировать",
		KeyStop:               "Стоп",
		KeyOpen:               "Открыть",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyTargetFormat:       "Целевой формат",
		KeyDefaultPerType:     "По умолчанию для типа",
		KeyMaxGIFDuration:     "Макс. длительность GIF (сек)",
		KeyFFmpegPath:         "Путь к FFmpeg",
		KeyFFprobePath:        "Путь к FFprobe",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyBrowse:             "Обзор",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyConversionStarted:  "Конвертация начата",
		KeyConversionDone:     "Конвертация завершена",
		KeyConversionFailed:   "Ошибка конвертации",
		KeyErrorOpeningFile:   "Ошибка открытия файла",
		KeyNoFilesSelected:    "Добавьте файлы для конвертации",
		KeyFilesSelected:      "файлов выбрано",
		KeyInstallMenu:        "Установить контекстное меню",
		KeyRemoveMenu:         "Удалить контекстное меню",
		KeyMenuInstalled:      "Пункты контекстного меню установлены",
		KeyMenuRemoved:        "Пункты контекстного меню удалены",
		KeyUnsupportedFile:    "Неподдерживаемый тип файла",
		KeyToolMissing:        "ffmpeg не найден. Установите его или укажите путь в настройках.",
		KeyFileLogging:        "Писать лог-файл",
		KeyHistoryEnabled:     "Сохранять историю конвертаций",
		KeyDefaultImageTarget: "Формат изображений по умолчанию",
		KeyDefaultAudioTarget: "Аудиоформат по умолчанию",
		KeyDefaultVideoTarget: "Видеоформат по умолчанию",
	}
}
