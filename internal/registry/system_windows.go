//go:build windows

package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	winreg "golang.org/x/sys/windows/registry"
)

// Where Windows keeps per-application uninstall information.
const uninstallKey = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`

// Returns the locator for this platform: the Windows uninstall registry.
func System(appName string) Locator {
	return uninstallLocator{appName: appName}
}

type uninstallLocator struct {
	appName string
}

// Implements [Locator].
//
// Subkeys without a display name, display version or install location are
// skipped, as are keys that cannot be opened.
func (l uninstallLocator) Installed(context.Context) (Registry, error) {
	root, err := winreg.OpenKey(winreg.LOCAL_MACHINE, uninstallKey, winreg.ENUMERATE_SUB_KEYS)
	if err != nil {
		if errors.Is(err, winreg.ErrNotExist) {
			return Registry{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrLocate, err)
	}
	defer root.Close()

	names, err := root.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocate, err)
	}

	r := make(Registry)
	for _, name := range names {
		e, ok := l.readEntry(root, name)
		if !ok {
			continue
		}
		r[e.Version] = e
	}
	return r, nil
}

func (l uninstallLocator) readEntry(root winreg.Key, name string) (Entry, bool) {
	k, err := winreg.OpenKey(root, name, winreg.QUERY_VALUE)
	if err != nil {
		return Entry{}, false
	}
	defer k.Close()

	display, _, err := k.GetStringValue("DisplayName")
	if err != nil || !matches(display, l.appName) {
		return Entry{}, false
	}
	ver, _, err := k.GetStringValue("DisplayVersion")
	if err != nil {
		return Entry{}, false
	}
	loc, _, err := k.GetStringValue("InstallLocation")
	if err != nil {
		slog.Debug("skipping entry without install location", "name", display)
		return Entry{}, false
	}

	return Entry{
		Name:    display,
		Version: ver,
		Path:    filepath.Join(loc, "bin", "TouchDesigner"),
	}, true
}
