package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal/envscope"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/logship"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/process"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/registry"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/settings"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/tdm"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/version"
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	specs "github.com/opencontainers/runtime-spec/specs-go"
)

// Ordered log of collaborator calls.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

func (r *recorder) index(event string) int {
	return slices.Index(r.list(), event)
}

type fakeResolver struct {
	rec  *recorder
	info *version.Info
	err  error
}

func (f *fakeResolver) Resolve(context.Context) (*version.Info, error) {
	f.rec.add("resolve")
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

type fakeLocator struct {
	rec     *recorder
	entries registry.Static
}

func (f *fakeLocator) Installed(ctx context.Context) (registry.Registry, error) {
	f.rec.add("locate")
	return f.entries.Installed(ctx)
}

// Records Setenv and Unsetenv calls on top of an in-memory environment.
type recordingEnv struct {
	*envscope.Map
	rec *recorder
}

func (e recordingEnv) Setenv(key, value string) error {
	e.rec.add("setenv %s=%s", key, value)
	return e.Map.Setenv(key, value)
}

func (e recordingEnv) Unsetenv(key string) error {
	e.rec.add("unsetenv %s", key)
	return e.Map.Unsetenv(key)
}

// Runs tdm and the application, recording each command line and the
// build version it was handed.
type fakeRunner struct {
	rec      *recorder
	failArgs string
	exitCode int
	err      error
}

func (f *fakeRunner) Run(_ context.Context, p *specs.Process) (*process.Result, error) {
	args := strings.Join(p.Args, " ")
	f.rec.add("run %s", args)
	for _, kv := range p.Env {
		if strings.HasPrefix(kv, envscope.VersionKey+"=") {
			f.rec.add("env %s", kv)
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.failArgs != "" && strings.Contains(args, f.failArgs) {
		return &process.Result{ExitCode: f.exitCode}, nil
	}
	return &process.Result{}, nil
}

type fakeShipper struct {
	rec *recorder
	err error
}

func (f *fakeShipper) Ship(_ context.Context, r logship.Record) error {
	f.rec.add("ship %s %s", filepath.Base(r.Path), r.Version)
	return f.err
}

type fakeArchiver struct {
	rec *recorder
	err error
}

func (f *fakeArchiver) Archive(_ context.Context, dir, dest string, annotations map[string]string) (ocispec.Descriptor, error) {
	f.rec.add("archive %s -> %s", filepath.Base(dir), filepath.Base(dest))
	if f.err != nil {
		return ocispec.Descriptor{}, f.err
	}
	return ocispec.Descriptor{
		MediaType:   "application/zip",
		Digest:      digest.FromString(dir),
		Size:        1,
		Annotations: annotations,
	}, nil
}

// Collaborators for one test build.
type fixture struct {
	rec      *recorder
	env      *envscope.Map
	resolver *fakeResolver
	locator  *fakeLocator
	runner   *fakeRunner
	shipper  *fakeShipper
	archiver *fakeArchiver
	settings *settings.Settings
}

func testInfo() *version.Info {
	return &version.Info{
		Commit:       "abc1234",
		Semver:       "1.4.5",
		Major:        "1",
		Minor:        "4",
		Patch:        "5",
		Branch:       "main",
		RemoteOrigin: "https://github.com/org/repo.git",
		RemoteSource: "github.com/org/repo.git",
	}
}

// Builds a fixture around a settings document. The placeholders {{dir}}
// in doc are replaced with a temporary directory.
func newFixture(t *testing.T, doc string) *fixture {
	t.Helper()

	dir := t.TempDir()
	doc = strings.ReplaceAll(doc, "{{dir}}", filepath.ToSlash(dir))

	s, err := settings.Parse([]byte(doc), false)
	if err != nil {
		t.Fatalf("settings.Parse() error = %v", err)
	}
	if s.PackageDir != "" {
		if err := os.MkdirAll(s.PackageDir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	rec := &recorder{}
	env := envscope.NewMap(map[string]string{"PATH": "/usr/bin"})
	return &fixture{
		rec:      rec,
		env:      env,
		resolver: &fakeResolver{rec: rec, info: testInfo()},
		locator: &fakeLocator{rec: rec, entries: registry.Static{
			{Name: "TouchDesigner 2023.11340", Version: "2023.11340", Path: "/opt/td/2023.11340/bin/TouchDesigner"},
			{Name: "TouchDesigner 2022.35320", Version: "2022.35320", Path: "/opt/td/2022.35320/bin/TouchDesigner"},
		}},
		runner:   &fakeRunner{rec: rec},
		shipper:  &fakeShipper{rec: rec},
		archiver: &fakeArchiver{rec: rec},
		settings: s,
	}
}

func (f *fixture) options() Options {
	return Options{
		Settings: f.settings,
		BuildID:  "test-build",
		Resolver: f.resolver,
		Locator:  f.locator,
		Env:      recordingEnv{Map: f.env, rec: f.rec},
		Stage:    tdm.New(f.runner),
		Runner:   f.runner,
		Shipper:  f.shipper,
		Archiver: f.archiver,
	}
}

// Fails unless none of the build variables remain in the environment.
func (f *fixture) assertEnvCleared(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range append(keys, envscope.VersionKey, envscope.RepoKey) {
		if v, ok := f.env.LookupEnv(key); ok {
			t.Errorf("%s = %q after build, want unset", key, v)
		}
	}
	if v, _ := f.env.LookupEnv("PATH"); v != "/usr/bin" {
		t.Errorf("PATH = %q, want %q", v, "/usr/bin")
	}
}

var errBoom = errors.New("boom")
