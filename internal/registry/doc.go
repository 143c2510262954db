// Package registry discovers installed TouchDesigner versions.
//
// A [Locator] returns a [Registry], a mapping from version string to the
// installation's display name and executable path. On Windows, [System]
// reads the uninstall entries under HKEY_LOCAL_MACHINE; elsewhere it reads
// a YAML manifest, which is also available on every platform through
// [File]. Looking up a version that is not installed returns an error
// matching [errdefs.ErrNotFound]; callers treat that as an expected
// outcome rather than a failure.
//
// Example usage:
//
//	apps, err := registry.System("TouchDesigner").Installed(ctx)
//	if err != nil {
//	    return err
//	}
//	entry, err := apps.Lookup("2023.11340")
//	if errdefs.IsNotFound(err) {
//	    ...
//	}
package registry
