// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user interactions to the conversion service and renders conversion
// tasks, notifications, and settings. All UI strings are localized via Localization.
package ui
