package build

import (
	"context"
	"fmt"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal/envscope"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/logship"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/process"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/registry"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/settings"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/version"
	"github.com/google/uuid"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Produces the version identity of a build.
type VersionResolver interface {
	Resolve(ctx context.Context) (*version.Info, error)
}

// Runs the dependency manager inside a project directory.
type DependencyStage interface {
	Install(ctx context.Context, dir string, env []string) error
	Run(ctx context.Context, dir string, env []string) error
}

// Zips a package directory.
type Archiver interface {
	Archive(ctx context.Context, dir, dest string, annotations map[string]string) (ocispec.Descriptor, error)
}

// Collaborators and settings of one build.
type Options struct {
	Settings *settings.Settings   // Build settings. Validated again before anything runs.
	BuildID  string               // Identifies the build in logs. Generated when empty.
	Resolver VersionResolver      // Resolves the package version.
	Locator  registry.Locator     // Lists installed applications.
	Env      envscope.Environment // Environment receiving the build variables.
	Stage    DependencyStage      // Required when dependencies are installed or the launch mode is tdm.
	Runner   process.Runner       // Required for the direct launch mode.
	Shipper  logship.Shipper      // Receives the application log. Nil skips shipping.
	Archiver Archiver             // Required for packageZip builds.
}

// Returned by [Run].
type Result struct {
	BuildID     string              // Identifier of the build.
	Outcome     Outcome             // How the build ended, when it did not fail.
	Version     *version.Info       // Resolved version, once known.
	Application *registry.Entry     // Application that ran, once located.
	Archive     *ocispec.Descriptor // Archive descriptor of packageZip builds.
	Trace       []State             // Every state entered, in order.
}

// Runs a build.
//
// The settings are validated before any side effect; an invalid document
// returns an error and an empty trace. A missing application version ends
// the build with [OutcomeSkipped] and a nil error. On failure the result is
// still returned so callers can inspect how far the build got. Every
// returned error wraps [ErrBuild].
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	if opts.BuildID == "" {
		opts.BuildID = uuid.NewString()
	}

	res, err := newPipeline(opts).run(ctx)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	return res, nil
}

// Checks that the settings are valid and every collaborator the settings
// call for is present.
func (o Options) validate() error {
	if o.Settings == nil {
		return fmt.Errorf("%w: settings are required", ErrOptions)
	}
	if err := o.Settings.Validate(); err != nil {
		return err
	}

	switch {
	case o.Resolver == nil:
		return fmt.Errorf("%w: version resolver is required", ErrOptions)
	case o.Locator == nil:
		return fmt.Errorf("%w: application locator is required", ErrOptions)
	case o.Env == nil:
		return fmt.Errorf("%w: environment is required", ErrOptions)
	case o.Stage == nil && o.Settings.InstallsDependencies():
		return fmt.Errorf("%w: dependency stage is required", ErrOptions)
	case o.Runner == nil && o.Settings.LaunchMode == settings.LaunchDirect:
		return fmt.Errorf("%w: process runner is required", ErrOptions)
	case o.Archiver == nil && o.Settings.BuildContents == settings.PackageZip:
		return fmt.Errorf("%w: archiver is required", ErrOptions)
	}
	return nil
}
