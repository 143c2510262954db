package build

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal/logging"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/process"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/registry"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/settings"
)

// Starts the application for a build and blocks until it exits.
type Launcher interface {
	Launch(ctx context.Context, app registry.Entry, s *settings.Settings, env []string) error
}

// Runs the application executable with the project file.
//
// The application's exit code is logged but not treated as a failure; the
// shipped log is the record of what happened inside the application.
type DirectLauncher struct {
	Runner process.Runner
}

// Implements [Launcher].
func (l DirectLauncher) Launch(ctx context.Context, app registry.Entry, s *settings.Settings, env []string) error {
	slog.Info("Starting "+app.Name, logging.Depth(2))

	res, err := l.Runner.Run(ctx, process.Command([]string{app.Path, s.ProjectFile}, env, ""))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLaunch, err)
	}
	if res.ExitCode != 0 {
		slog.Warn("application exited with non-zero status", "code", res.ExitCode, logging.Depth(2))
	}
	return nil
}

// Lets tdm start the application from the project directory.
type TDMLauncher struct {
	Stage DependencyStage
}

// Implements [Launcher].
func (l TDMLauncher) Launch(ctx context.Context, app registry.Entry, s *settings.Settings, env []string) error {
	slog.Info("Starting "+app.Name+" through tdm", logging.Depth(2))
	return l.Stage.Run(ctx, s.ProjectDir, env)
}

// Returns the launcher for the settings' launch mode.
func launcherFor(opts Options) Launcher {
	if opts.Settings.LaunchMode == settings.LaunchTDM {
		return TDMLauncher{Stage: opts.Stage}
	}
	return DirectLauncher{Runner: opts.Runner}
}
