package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal/envscope"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/logging"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/logship"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/paths"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/registry"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/settings"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/version"
	"github.com/containerd/errdefs"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Holds the state of one build.
type pipeline struct {
	opts     Options
	settings *settings.Settings
	launcher Launcher
	log      *slog.Logger
	result   *Result
}

// Creates a [pipeline] from validated options.
func newPipeline(opts Options) *pipeline {
	return &pipeline{
		opts:     opts,
		settings: opts.Settings,
		launcher: launcherFor(opts),
		log:      slog.Default().With("build", opts.BuildID),
		result: &Result{
			BuildID: opts.BuildID,
			Trace:   []State{StateIdle},
		},
	}
}

// Records a state transition.
func (p *pipeline) enter(s State) {
	p.result.Trace = append(p.result.Trace, s)
	p.log.Debug("state", "state", s)
}

// Runs the build to Done or Failed.
func (p *pipeline) run(ctx context.Context) (*Result, error) {
	if p.settings.BuildContents == settings.PackageZip {
		p.log.Info("building tox package...")
	} else {
		p.log.Info("building tox inventory...")
	}

	if err := p.execute(ctx); err != nil {
		p.enter(StateFailed)
		return p.result, err
	}

	p.enter(StateDone)
	return p.result, nil
}

// Runs every step up to and including the environment teardown.
//
// Once the environment scope is entered its release is deferred, so it
// happens on success, early stop, failure and panic alike.
func (p *pipeline) execute(ctx context.Context) (err error) {
	if err := p.verifyDirectories(); err != nil {
		return err
	}

	info, err := p.resolveVersion(ctx)
	if err != nil {
		return err
	}

	scope, err := envscope.Enter(p.opts.Env, p.settings.EnvVars, info)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEnvironment, err)
	}
	p.enter(StateEnvironmentApplied)

	defer func() {
		if exitErr := scope.Exit(); exitErr != nil {
			err = errors.Join(err, fmt.Errorf("%w: %w", ErrEnvironment, exitErr))
		}
		p.enter(StateEnvironmentCleared)
	}()

	return p.produce(ctx, scope, info)
}

// Runs the steps that need the build environment.
func (p *pipeline) produce(ctx context.Context, scope *envscope.Scope, info *version.Info) error {
	app, err := p.locateApplication(ctx)
	if err != nil {
		return err
	}
	if app == nil {
		p.result.Outcome = OutcomeSkipped
		return nil
	}

	if p.settings.InstallsDependencies() {
		p.log.Info("Fetch TDM elements", logging.Depth(2))
		if err := p.opts.Stage.Install(ctx, p.settings.ProjectDir, scope.Environ()); err != nil {
			return err
		}
		p.enter(StateDependenciesInstalled)
	}

	if err := p.launcher.Launch(ctx, *app, p.settings, scope.Environ()); err != nil {
		return err
	}
	p.enter(StateApplicationRun)

	p.collectLog(ctx, info)
	p.enter(StateLogCollected)

	if p.settings.BuildContents == settings.PackageZip {
		if err := p.archive(ctx, info); err != nil {
			return err
		}
		p.enter(StateArchived)
	}

	p.result.Outcome = OutcomeCompleted
	return nil
}

// Creates the destination directory if needed.
func (p *pipeline) verifyDirectories() error {
	p.log.Info("verifying output directories are created...")

	if _, err := os.Stat(p.settings.DestDir); err != nil {
		p.log.Info("creating directories...", logging.Depth(1))
	}
	if err := os.MkdirAll(p.settings.DestDir, paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	p.enter(StateDirectoriesVerified)
	return nil
}

// Resolves the version of the package being built.
func (p *pipeline) resolveVersion(ctx context.Context) (*version.Info, error) {
	p.log.Info("Starting deploy process...")
	p.log.Info("Finding Version Info...", logging.Depth(1))

	info, err := p.opts.Resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	p.log.Info("Creating build "+info.Triple(), logging.Depth(2))
	p.result.Version = info
	p.enter(StateVersionResolved)
	return info, nil
}

// Finds the installed application matching the requested version exactly.
// Returns nil without error when that version is not installed.
func (p *pipeline) locateApplication(ctx context.Context) (*registry.Entry, error) {
	installed, err := p.opts.Locator.Installed(ctx)
	if err != nil {
		return nil, err
	}

	p.log.Info(p.settings.AppName+" Versions on Local System", logging.Depth(1))
	for _, e := range installed.Entries() {
		p.log.Info(e.Name, logging.Depth(2))
	}

	app, err := installed.Lookup(p.settings.TDVersion)
	if errdefs.IsNotFound(err) {
		p.log.Info(fmt.Sprintf("Unable to locate %s %s on this machine, exiting", p.settings.AppName, p.settings.TDVersion), logging.Depth(2))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.result.Application = &app
	p.enter(StateApplicationLocated)
	return &app, nil
}

// Hands the application log to the shipper. Failures are logged only.
func (p *pipeline) collectLog(ctx context.Context, info *version.Info) {
	if p.opts.Shipper == nil {
		p.log.Debug("no log shipper configured", "log", p.settings.LogFile)
		return
	}

	p.log.Info("Collecting "+p.settings.AppName+" log", logging.Depth(2))

	err := p.opts.Shipper.Ship(ctx, logship.Record{
		Path:    p.settings.LogFile,
		BuildID: p.opts.BuildID,
		Version: info.Triple(),
		Commit:  info.Commit,
		Source:  info.RemoteSource,
	})
	if err != nil {
		p.log.Warn("log shipping failed", "error", err, logging.Depth(2))
	}
}

// Zips the package directory next to itself.
func (p *pipeline) archive(ctx context.Context, info *version.Info) error {
	p.log.Info("Zipping package", logging.Depth(2))

	dest := p.settings.ArchivePath()
	desc, err := p.opts.Archiver.Archive(ctx, p.settings.PackageDir, dest, map[string]string{
		ocispec.AnnotationVersion:  info.Triple(),
		ocispec.AnnotationRevision: info.Commit,
		ocispec.AnnotationSource:   info.RemoteOrigin,
	})
	if err != nil {
		return err
	}

	p.log.Info("archive created",
		"path", dest,
		"digest", desc.Digest,
		"size", desc.Size,
		logging.Depth(2),
	)
	p.result.Archive = &desc
	return nil
}
