package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}
}

func TestCommand(t *testing.T) {
	p := Command([]string{"tdm", "install"}, []string{"A=1"}, "TouchDesigner")
	if len(p.Args) != 2 || p.Args[0] != "tdm" || p.Args[1] != "install" {
		t.Fatalf("Args = %v, want [tdm install]", p.Args)
	}
	if len(p.Env) != 1 || p.Env[0] != "A=1" {
		t.Fatalf("Env = %v, want [A=1]", p.Env)
	}
	if p.Cwd != "TouchDesigner" {
		t.Fatalf("Cwd = %q, want TouchDesigner", p.Cwd)
	}
}

func TestRunEmptyArgs(t *testing.T) {
	_, err := Host{}.Run(t.Context(), Command(nil, nil, ""))
	if !errors.Is(err, ErrEmptyArgs) {
		t.Fatalf("err = %v, want ErrEmptyArgs", err)
	}
}

func TestRunCapturesOutputAndExitCode(t *testing.T) {
	requireShell(t)

	var live bytes.Buffer
	res, err := Host{Stdout: &live}.Run(t.Context(), Command(
		[]string{"sh", "-c", "echo out; echo err >&2; exit 3"}, nil, ""))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("ExitCode = %d, want 3", res.ExitCode)
	}
	if strings.TrimSpace(res.Stdout) != "out" {
		t.Fatalf("Stdout = %q, want out", res.Stdout)
	}
	if strings.TrimSpace(res.Stderr) != "err" {
		t.Fatalf("Stderr = %q, want err", res.Stderr)
	}
	if strings.TrimSpace(live.String()) != "out" {
		t.Fatalf("live stdout = %q, want out", live.String())
	}
}

func TestRunUsesCwdAndEnv(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	res, err := Host{}.Run(t.Context(), Command(
		[]string{"sh", "-c", `pwd; printf '%s' "$SM_TOXVERSION"`},
		[]string{"SM_TOXVERSION=1.2.3", "PATH=/usr/bin:/bin"},
		dir,
	))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("Stdout = %q, want two lines", res.Stdout)
	}
	gotDir, _ := filepath.EvalSymlinks(lines[0])
	wantDir, _ := filepath.EvalSymlinks(dir)
	if gotDir != wantDir {
		t.Fatalf("cwd = %q, want %q", gotDir, wantDir)
	}
	if lines[1] != "1.2.3" {
		t.Fatalf("SM_TOXVERSION = %q, want 1.2.3", lines[1])
	}
}

func TestRunMissingBinary(t *testing.T) {
	_, err := Host{}.Run(t.Context(), Command([]string{"toxbuild-definitely-not-installed"}, nil, ""))
	if !errors.Is(err, ErrStart) {
		t.Fatalf("err = %v, want ErrStart", err)
	}
}

func TestRunCancelled(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := Host{}.Run(ctx, Command([]string{"sh", "-c", "sleep 5"}, nil, ""))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
