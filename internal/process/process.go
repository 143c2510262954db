package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	specs "github.com/opencontainers/runtime-spec/specs-go"
)

// Output of a finished process.
type Result struct {
	ExitCode int    // Exit code of the process.
	Stdout   string // Captured standard output.
	Stderr   string // Captured standard error.
}

// Starts processes and waits for them to exit.
type Runner interface {
	Run(ctx context.Context, p *specs.Process) (*Result, error)
}

// Builds a process spec. An empty env inherits the parent environment.
func Command(args []string, env []string, cwd string) *specs.Process {
	return &specs.Process{
		Args: args,
		Env:  env,
		Cwd:  cwd,
	}
}

// Runs processes directly on the host.
//
// Output is always captured into the [Result]. When Stdout or Stderr is set
// the stream is also copied there as the process runs.
type Host struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Runs the process and blocks until it exits.
//
// There is no timeout; cancelling ctx kills the process. A non-zero exit
// code is reported in the result, not as an error.
func (h Host) Run(ctx context.Context, p *specs.Process) (*Result, error) {
	if len(p.Args) == 0 {
		return nil, ErrEmptyArgs
	}

	cmd := exec.CommandContext(ctx, p.Args[0], p.Args[1:]...)
	cmd.Dir = p.Cwd
	if len(p.Env) > 0 {
		cmd.Env = p.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = tee(&stdout, h.Stdout)
	cmd.Stderr = tee(&stderr, h.Stderr)

	err := cmd.Run()
	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case ctx.Err() != nil:
		return nil, fmt.Errorf("%s: %w", p.Args[0], ctx.Err())
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	default:
		return nil, fmt.Errorf("%w: %s: %w", ErrStart, p.Args[0], err)
	}
}

// Returns buf, or a writer copying to both buf and w when w is set.
func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}
