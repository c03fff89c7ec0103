//go:build windows

package registry

import (
	"fmt"
	"strings"

	"golang.org/x/sys/windows/registry"
)

// Registry key layout under HKEY_CURRENT_USER
const (
	classesRoot       = `Software\Classes`
	fileAssociations  = classesRoot + `\SystemFileAssociations`
	menuKeyName       = "FileConverterConvert"
	menuVerb          = "Convert to"
	commandsKeySuffix = "ConvertCommands"
	subcommandPrefix  = "to_"
	muiVerbValue      = "MUIVerb"
	subCommandsValue  = "ExtendedSubCommandsKey"
	commandKeyName    = "command"
)

// createExtensionKeys builds the context-menu cascade for one extension:
//
//	SystemFileAssociations\.<ext>\shell\FileConverterConvert
//	    MUIVerb = "Convert to"
//	    ExtendedSubCommandsKey = "<ext>ConvertCommands"
//	<ext>ConvertCommands\shell\to_<target>
//	    (Default) = "To <TARGET>"
//	    command\(Default) = "<exe>" -f <target> "%1"
//
// Returned paths are relative to HKCU, deepest last, so deletion in reverse
// order removes children before parents.
func createExtensionKeys(exePath, ext string, targets []string) ([]string, error) {
	var created []string

	commandsKey := ext + commandsKeySuffix

	menuPath := fmt.Sprintf(`%s\.%s\shell\%s`, fileAssociations, ext, menuKeyName)
	key, _, err := registry.CreateKey(registry.CURRENT_USER, menuPath, registry.ALL_ACCESS)
	if err != nil {
		return created, fmt.Errorf("failed to create menu key: %w", err)
	}
	created = append(created, menuPath)

	if err := key.SetStringValue(muiVerbValue, menuVerb); err != nil {
		key.Close()
		return created, fmt.Errorf("failed to set menu verb: %w", err)
	}
	if err := key.SetStringValue(subCommandsValue, commandsKey); err != nil {
		key.Close()
		return created, fmt.Errorf("failed to set subcommands key: %w", err)
	}
	key.Close()

	for _, target := range targets {
		subPath := fmt.Sprintf(`%s\%s\shell\%s%s`, classesRoot, commandsKey, subcommandPrefix, target)
		subKey, _, err := registry.CreateKey(registry.CURRENT_USER, subPath, registry.ALL_ACCESS)
		if err != nil {
			return created, fmt.Errorf("failed to create subcommand key for %s: %w", target, err)
		}
		created = append(created, subPath)

		if err := subKey.SetStringValue("", "To "+strings.ToUpper(target)); err != nil {
			subKey.Close()
			return created, fmt.Errorf("failed to set subcommand label: %w", err)
		}
		subKey.Close()

		cmdPath := subPath + `\` + commandKeyName
		cmdKey, _, err := registry.CreateKey(registry.CURRENT_USER, cmdPath, registry.ALL_ACCESS)
		if err != nil {
			return created, fmt.Errorf("failed to create command key for %s: %w", target, err)
		}
		created = append(created, cmdPath)

		command := fmt.Sprintf(`"%s" -f %s "%%1"`, exePath, target)
		if err := cmdKey.SetStringValue("", command); err != nil {
			cmdKey.Close()
			return created, fmt.Errorf("failed to set command: %w", err)
		}
		cmdKey.Close()
	}

	return created, nil
}

// deleteExtensionKeys removes recorded key paths, children first.
func deleteExtensionKeys(keys []string) error {
	for i := len(keys) - 1; i >= 0; i-- {
		if err := deleteKeyTree(keys[i]); err != nil {
			return err
		}
	}
	return nil
}

// deleteKeyTree deletes a key and everything under it. Missing keys are not
// an error so removal stays idempotent.
func deleteKeyTree(path string) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, path, registry.ALL_ACCESS)
	if err == registry.ErrNotExist {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open key %s: %w", path, err)
	}

	names, err := key.ReadSubKeyNames(-1)
	key.Close()
	if err != nil {
		return fmt.Errorf("failed to list subkeys of %s: %w", path, err)
	}

	for _, name := range names {
		if err := deleteKeyTree(path + `\` + name); err != nil {
			return err
		}
	}

	if err := registry.DeleteKey(registry.CURRENT_USER, path); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", path, err)
	}
	return nil
}
