package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/containerd/errdefs"
)

func TestLookup(t *testing.T) {
	r, _ := Static{
		{Name: "TouchDesigner 2023.11340", Version: "2023.11340", Path: "/td/2023/bin/TouchDesigner"},
		{Name: "TouchDesigner 2022.35320", Version: "2022.35320", Path: "/td/2022/bin/TouchDesigner"},
	}.Installed(t.Context())

	e, err := r.Lookup("2023.11340")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if e.Path != "/td/2023/bin/TouchDesigner" {
		t.Fatalf("Path = %q, want 2023 executable", e.Path)
	}

	for _, v := range []string{"2023.1134", "2023.11340 ", "2024.10000", ""} {
		if _, err := r.Lookup(v); !errdefs.IsNotFound(err) {
			t.Errorf("Lookup(%q) = %v, want not found", v, err)
		}
	}
}

func TestEntriesSorted(t *testing.T) {
	r := Registry{
		"2023.11340": {Version: "2023.11340"},
		"2021.16410": {Version: "2021.16410"},
		"2022.35320": {Version: "2022.35320"},
	}
	got := r.Entries()
	if len(got) != 3 || got[0].Version != "2021.16410" || got[2].Version != "2023.11340" {
		t.Fatalf("Entries() = %v, want ascending versions", got)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"TouchDesigner 2023.11340", true},
		{"touchdesigner 099", true},
		{"TouchDesigner Dependency Manager", false},
		{"TouchPlayer 2023.11340", false},
	}
	for _, tt := range tests {
		if got := matches(tt.name, "TouchDesigner"); got != tt.want {
			t.Errorf("matches(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.yaml")
	manifest := `apps:
  - name: TouchDesigner 2023.11340
    version: "2023.11340"
    path: /opt/td/2023/bin/TouchDesigner
  - name: TouchDesigner Dependency Manager
    version: "1.0.0"
    path: /opt/tdm/tdm
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := File{Path: path, AppName: "TouchDesigner"}.Installed(t.Context())
	if err != nil {
		t.Fatalf("Installed: %v", err)
	}
	if len(r) != 1 {
		t.Fatalf("len = %d, want 1 (dependency manager excluded): %v", len(r), r)
	}
	if r["2023.11340"].Path != "/opt/td/2023/bin/TouchDesigner" {
		t.Fatalf("entry = %+v", r["2023.11340"])
	}
}

func TestFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	r, err := File{Path: path, Missing: true}.Installed(t.Context())
	if err != nil || len(r) != 0 {
		t.Fatalf("Installed = %v, %v; want empty registry", r, err)
	}

	if _, err := (File{Path: path}).Installed(t.Context()); !errors.Is(err, ErrLocate) {
		t.Fatalf("err = %v, want ErrLocate", err)
	}
}

func TestFileEntryWithoutVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.yaml")
	if err := os.WriteFile(path, []byte("apps:\n  - name: TouchDesigner\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (File{Path: path}).Installed(t.Context()); !errors.Is(err, ErrLocate) {
		t.Fatalf("err = %v, want ErrLocate", err)
	}
}
