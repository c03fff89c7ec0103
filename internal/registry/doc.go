// Package registry installs and removes the Windows Explorer context-menu
// entries that launch conversions. Every created registry key is tracked in a
// bookkeeping file so removal deletes exactly what setup created, even after
// the supported format table changes between versions.
package registry
