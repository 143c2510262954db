//go:build !windows

package registry

import "github.com/SudoMagicCode/action-build-td-tox-package/internal/paths"

// Returns the locator for this platform: the manifest at [paths.Apps]. A
// missing manifest means nothing is installed.
func System(appName string) Locator {
	return File{Path: paths.Apps(), AppName: appName, Missing: true}
}
