package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Subdirectory name under each XDG base directory.
	appName = "toxbuild"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Directory holding local copies of collected TouchDesigner logs.
//
//	Linux:   $XDG_STATE_HOME/toxbuild/logs or ~/.local/state/toxbuild/logs
//	macOS:   ~/Library/Application Support/toxbuild/logs
//	Windows: %LOCALAPPDATA%\toxbuild\logs
func Logs() string {
	return filepath.Join(xdg.StateHome, appName, "logs")
}

// Default application manifest consulted when the platform offers no
// installed-application registry.
//
//	Linux:   $XDG_CONFIG_HOME/toxbuild/apps.yaml
//	macOS:   ~/Library/Application Support/toxbuild/apps.yaml
//	Windows: %LOCALAPPDATA%\toxbuild\apps.yaml
func Apps() string {
	return filepath.Join(xdg.ConfigHome, appName, "apps.yaml")
}
