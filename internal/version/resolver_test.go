package version

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal/process"
)

// Answers git queries from a fixed table keyed by the joined arguments.
type fakeGit struct {
	answers map[string]string
	calls   []string
}

func (g *fakeGit) Output(_ context.Context, args ...string) (string, error) {
	key := strings.Join(args, " ")
	g.calls = append(g.calls, key)
	out, ok := g.answers[key]
	if !ok {
		return "", fmt.Errorf("git %s: exit code 128", key)
	}
	return out, nil
}

func newFakeGit(tag string) *fakeGit {
	return &fakeGit{answers: map[string]string{
		"describe --tags --abbrev=0 --match " + tagPattern: tag,
		"rev-parse --verify --quiet refs/tags/v2.3":        "0f1e2d3c",
		"rev-list --count v2.3..HEAD":                      "7",
		"rev-parse --abbrev-ref HEAD":                      "main",
		"rev-parse --short HEAD":                           "a1b2c3d",
		"remote get-url origin":                            "https://github.com/SudoMagicCode/td-widgets.git",
	}}
}

func TestResolve(t *testing.T) {
	git := newFakeGit("v2.3")
	info, err := NewResolver(Options{Git: git}).Resolve(t.Context())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := Info{
		Commit:       "a1b2c3d",
		Semver:       "2.3.7",
		Major:        "2",
		Minor:        "3",
		Patch:        "7",
		Branch:       "main",
		RemoteOrigin: "https://github.com/SudoMagicCode/td-widgets.git",
		RemoteSource: "github.com/SudoMagicCode/td-widgets.git",
	}
	if *info != want {
		t.Fatalf("info = %+v\nwant   %+v", *info, want)
	}
}

func TestResolveDiscardsTagPatch(t *testing.T) {
	git := newFakeGit("v2.3.41")
	info, err := NewResolver(Options{Git: git}).Resolve(t.Context())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if info.Semver != "2.3.7" {
		t.Fatalf("Semver = %q, want 2.3.7 (tag patch discarded)", info.Semver)
	}
}

func TestResolveFallsBackToDescribedTag(t *testing.T) {
	git := newFakeGit("v2.3.0")
	delete(git.answers, "rev-parse --verify --quiet refs/tags/v2.3")
	delete(git.answers, "rev-list --count v2.3..HEAD")
	git.answers["rev-list --count v2.3.0..HEAD"] = "4"

	info, err := NewResolver(Options{Git: git}).Resolve(t.Context())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if info.Patch != "4" {
		t.Fatalf("Patch = %q, want 4", info.Patch)
	}
}

func TestResolveTrimGitSuffix(t *testing.T) {
	info, err := NewResolver(Options{Git: newFakeGit("v2.3"), TrimGitSuffix: true}).Resolve(t.Context())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if info.RemoteSource != "github.com/SudoMagicCode/td-widgets" {
		t.Fatalf("RemoteSource = %q, want suffix trimmed", info.RemoteSource)
	}
	if info.RemoteOrigin != "https://github.com/SudoMagicCode/td-widgets.git" {
		t.Fatalf("RemoteOrigin = %q, want untouched", info.RemoteOrigin)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *fakeGit)
		is     error
	}{
		{
			name:   "no tag",
			mutate: func(g *fakeGit) { delete(g.answers, "describe --tags --abbrev=0 --match "+tagPattern) },
			is:     ErrNoTag,
		},
		{
			name:   "malformed tag",
			mutate: func(g *fakeGit) { g.answers["describe --tags --abbrev=0 --match "+tagPattern] = "vX.3" },
			is:     ErrMalformed,
		},
		{
			name:   "count fails",
			mutate: func(g *fakeGit) { delete(g.answers, "rev-list --count v2.3..HEAD") },
		},
		{
			name:   "count not a number",
			mutate: func(g *fakeGit) { g.answers["rev-list --count v2.3..HEAD"] = "seven" },
		},
		{
			name:   "no origin",
			mutate: func(g *fakeGit) { delete(g.answers, "remote get-url origin") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			git := newFakeGit("v2.3")
			tt.mutate(git)

			_, err := NewResolver(Options{Git: git}).Resolve(t.Context())
			if !errors.Is(err, ErrResolution) {
				t.Fatalf("err = %v, want ErrResolution", err)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("err = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag          string
		major, minor string
		wantErr      bool
	}{
		{tag: "v1.0", major: "1", minor: "0"},
		{tag: "v12.34.5", major: "12", minor: "34"},
		{tag: "v2023.11", major: "2023", minor: "11"},
		{tag: "1.2", wantErr: true},
		{tag: "v1", wantErr: true},
		{tag: "v1.x", wantErr: true},
		{tag: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			major, minor, err := parseTag(tt.tag)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseTag(%q) = %q, %q, want error", tt.tag, major, minor)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTag(%q): %v", tt.tag, err)
			}
			if major != tt.major || minor != tt.minor {
				t.Fatalf("parseTag(%q) = %q, %q, want %q, %q", tt.tag, major, minor, tt.major, tt.minor)
			}
		})
	}
}

// Builds a real repository with a lineage tag followed by n commits and
// checks that the patch number equals n.
func TestResolveAgainstGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found")
	}

	dir := t.TempDir()
	git := CommandGit{Dir: dir}
	run := func(args ...string) {
		t.Helper()
		if _, err := git.Output(t.Context(), args...); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}

	run("init", "--quiet", "--initial-branch=release")
	run("config", "user.email", "builder@example.com")
	run("config", "user.name", "builder")
	run("config", "commit.gpgsign", "false")
	run("remote", "add", "origin", "https://example.com/org/repo.git")
	run("commit", "--allow-empty", "--quiet", "-m", "base")
	run("tag", "v1.4")

	const n = 5
	for i := range n {
		run("commit", "--allow-empty", "--quiet", "-m", "change "+strconv.Itoa(i))
	}

	info, err := NewResolver(Options{Dir: dir}).Resolve(t.Context())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if info.Patch != strconv.Itoa(n) {
		t.Fatalf("Patch = %q, want %d", info.Patch, n)
	}
	if info.Semver != "1.4."+strconv.Itoa(n) {
		t.Fatalf("Semver = %q, want 1.4.%d", info.Semver, n)
	}
	if info.Branch != "release" {
		t.Fatalf("Branch = %q, want release", info.Branch)
	}
	if info.RemoteSource != "example.com/org/repo.git" {
		t.Fatalf("RemoteSource = %q, want example.com/org/repo.git", info.RemoteSource)
	}
	if len(info.Commit) < 4 {
		t.Fatalf("Commit = %q, want abbreviated hash", info.Commit)
	}
}

func TestResolveOutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found")
	}

	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	_, err := NewResolver(Options{Git: CommandGit{Dir: dir, Runner: process.Host{}}}).Resolve(t.Context())
	if !errors.Is(err, ErrResolution) {
		t.Fatalf("err = %v, want ErrResolution", err)
	}
}
