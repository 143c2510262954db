package tdm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal/logging"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/process"
)

const (

	// Executable name looked up on PATH.
	DefaultBinary = "tdm"

	SubcommandInstall = "install"
	SubcommandRun     = "run"
)

// Invokes tdm subcommands.
type Stage struct {
	Binary string         // Executable. Empty uses [DefaultBinary].
	Runner process.Runner // Runs the subprocess.
}

// Creates a [Stage] running the default binary through runner.
func New(runner process.Runner) *Stage {
	return &Stage{Binary: DefaultBinary, Runner: runner}
}

// Fetches the project's dependencies into dir.
func (s *Stage) Install(ctx context.Context, dir string, env []string) error {
	return s.invoke(ctx, SubcommandInstall, dir, env)
}

// Lets tdm launch the project in dir.
func (s *Stage) Run(ctx context.Context, dir string, env []string) error {
	return s.invoke(ctx, SubcommandRun, dir, env)
}

func (s *Stage) invoke(ctx context.Context, sub, dir string, env []string) error {
	bin := s.Binary
	if bin == "" {
		bin = DefaultBinary
	}

	slog.Debug("invoking tdm", "subcommand", sub, "dir", dir, logging.Depth(2))

	res, err := s.Runner.Run(ctx, process.Command([]string{bin, sub}, env, dir))
	if err != nil {
		return fmt.Errorf("%w: tdm %s: %w", ErrStage, sub, err)
	}
	if res.ExitCode != 0 {
		return &StageError{Subcommand: sub, ExitCode: res.ExitCode}
	}
	return nil
}
