package registry

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/containerd/errdefs"
)

// Display names that match the application name but are not the
// application itself.
var excludedNames = []string{"TouchDesigner Dependency Manager"}

// One installed application.
type Entry struct {
	Name    string `yaml:"name" json:"name"`       // Display name (e.g., "TouchDesigner 2023.11340").
	Version string `yaml:"version" json:"version"` // Version string (e.g., "2023.11340").
	Path    string `yaml:"path" json:"path"`       // Executable path.
}

// Returns "<name> | <version> | <path>".
func (e Entry) String() string {
	return e.Name + " | " + e.Version + " | " + e.Path
}

// Installed applications keyed by version.
type Registry map[string]Entry

// Returns the entry for an exact version string.
//
// A missing version returns an error matching [errdefs.ErrNotFound].
func (r Registry) Lookup(version string) (Entry, error) {
	e, ok := r[version]
	if !ok {
		return Entry{}, fmt.Errorf("version %q is not installed: %w", version, errdefs.ErrNotFound)
	}
	return e, nil
}

// Returns the entries ordered by version.
func (r Registry) Entries() []Entry {
	return slices.SortedFunc(maps.Values(r), func(a, b Entry) int {
		return cmp.Compare(a.Version, b.Version)
	})
}

// Discovers installed applications.
type Locator interface {
	Installed(ctx context.Context) (Registry, error)
}

// A fixed set of entries.
type Static []Entry

// Implements [Locator].
func (s Static) Installed(context.Context) (Registry, error) {
	r := make(Registry, len(s))
	for _, e := range s {
		r[e.Version] = e
	}
	return r, nil
}

// Reports whether a display name belongs to the application appName:
// case-insensitive containment, minus the excluded companion tools.
func matches(displayName, appName string) bool {
	if slices.Contains(excludedNames, displayName) {
		return false
	}
	return strings.Contains(strings.ToLower(displayName), strings.ToLower(appName))
}
