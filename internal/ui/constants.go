package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconCopy     = "📋"
	IconClose    = "×"
	IconError    = "❌"
	IconLanguage = "🌐"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	ArrowSeparator     = " → "
)

// Layout sizing (TaskRow / lists)
const (
	StatusLabelWidth float32 = 96
	TargetLabelWidth float32 = 64

	RowMinWidth  float32 = 400
	RowMinHeight float32 = 64
	RowDefaultH  float32 = 56
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)
