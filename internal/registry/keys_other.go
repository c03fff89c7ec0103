//go:build !windows

package registry

// createExtensionKeys is a stub on systems without a Windows registry.
func createExtensionKeys(_, _ string, _ []string) ([]string, error) {
	return nil, ErrUnsupportedPlatform
}

// deleteExtensionKeys is a stub on systems without a Windows registry.
func deleteExtensionKeys(_ []string) error {
	return ErrUnsupportedPlatform
}
