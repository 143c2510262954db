package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Reads installations from a YAML manifest:
//
//	apps:
//	  - name: TouchDesigner 2023.11340
//	    version: "2023.11340"
//	    path: /opt/derivative/TouchDesigner.2023.11340/bin/TouchDesigner
type File struct {
	Path    string // Manifest path.
	AppName string // Entries whose name does not match are ignored. Empty keeps all.
	Missing bool   // Treat a missing manifest as an empty registry.
}

type manifest struct {
	Apps []Entry `yaml:"apps"`
}

// Implements [Locator].
func (f File) Installed(context.Context) (Registry, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if f.Missing && errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no application manifest", "path", f.Path)
			return Registry{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrLocate, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLocate, f.Path, err)
	}

	r := make(Registry, len(m.Apps))
	for _, e := range m.Apps {
		if e.Version == "" {
			return nil, fmt.Errorf("%w: %s: entry %q has no version", ErrLocate, f.Path, e.Name)
		}
		if f.AppName != "" && !matches(e.Name, f.AppName) {
			continue
		}
		r[e.Version] = e
	}
	return r, nil
}
