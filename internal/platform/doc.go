// Package platform contains OS-specific helpers: application data directory
// resolution, executable location, and opening converted files in the system
// file manager or default application.
package platform
