package logship

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// One log file to ship, with the build it belongs to.
type Record struct {
	Path    string // Log file written by the application.
	BuildID string // Unique identifier of the build invocation.
	Version string // Package version ("<major>.<minor>.<patch>").
	Commit  string // Abbreviated commit the package was built from.
	Source  string // Repository the package was built from, without scheme.
}

// Delivers a build log somewhere it outlives the build.
type Shipper interface {
	Ship(ctx context.Context, rec Record) error
}

// Returns the object name of a record below prefix:
// "<prefix>/<source>/<version>/<build-id>/<file>". Empty parts are skipped.
func objectKey(prefix string, rec Record) string {
	parts := []string{strings.Trim(prefix, "/")}
	parts = append(parts, strings.Trim(rec.Source, "/"), rec.Version, rec.BuildID, filepath.Base(rec.Path))

	kept := parts[:0]
	for _, p := range parts {
		if p != "" && p != "." {
			kept = append(kept, p)
		}
	}
	return path.Join(kept...)
}

// Confirms the log exists and is a regular file.
func checkLog(p string) (os.FileInfo, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingLog, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrMissingLog, p)
	}
	return info, nil
}
