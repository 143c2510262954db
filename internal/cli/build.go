package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal/archive"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/build"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/envscope"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/logship"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/paths"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/process"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/registry"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/settings"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/tdm"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/version"
)

// S3 log bucket flags.
type S3Flags struct {
	Endpoint  string `name:"endpoint" env:"TOXBUILD_S3_ENDPOINT" help:"S3 endpoint (host:port). Enables S3 log shipping." placeholder:"HOST"`
	AccessKey string `name:"access-key" env:"TOXBUILD_S3_ACCESS_KEY" help:"S3 access key."`
	SecretKey string `name:"secret-key" env:"TOXBUILD_S3_SECRET_KEY" help:"S3 secret key."`
	Region    string `name:"region" env:"TOXBUILD_S3_REGION" help:"S3 region."`
	Bucket    string `name:"bucket" env:"TOXBUILD_S3_BUCKET" default:"toxbuild-logs" help:"Bucket receiving application logs."`
	Prefix    string `name:"prefix" env:"TOXBUILD_S3_PREFIX" default:"logs" help:"Object name prefix."`
	Insecure  bool   `name:"insecure" env:"TOXBUILD_S3_INSECURE" help:"Connect without TLS."`
}

// Returns the shipper configuration.
func (f S3Flags) config() logship.Config {
	return logship.Config{
		Endpoint:  f.Endpoint,
		AccessKey: f.AccessKey,
		SecretKey: f.SecretKey,
		Region:    f.Region,
		Bucket:    f.Bucket,
		Prefix:    f.Prefix,
		UseSSL:    !f.Insecure,
	}
}

// Represents the 'toxbuild build' command.
type BuildCmd struct {
	Settings string  `arg:"" type:"existingfile" help:"Build settings document (.json, .yaml or .yml)."`
	Repo     string  `short:"C" type:"path" default:"." help:"Repository the version is resolved from."`
	Apps     string  `type:"path" placeholder:"PATH" help:"Read installed applications from a YAML manifest instead of the system."`
	Logs     string  `type:"path" placeholder:"PATH" help:"Directory receiving the application log when S3 is not configured."`
	S3       S3Flags `embed:"" prefix:"s3-" group:"S3 log shipping"`
}

// Executes the build command.
//
// Settings are loaded and validated before anything else happens. A build
// that stops early because the TouchDesigner version is not installed
// returns nil.
func (c *BuildCmd) Run(ctx context.Context) error {
	s, err := settings.Load(c.Settings)
	if err != nil {
		return err
	}

	shipper, err := c.shipper()
	if err != nil {
		return err
	}

	runner := process.Host{Stdout: os.Stderr, Stderr: os.Stderr}

	res, err := build.Run(ctx, build.Options{
		Settings: s,
		Resolver: version.NewResolver(version.Options{
			Dir:           c.Repo,
			TrimGitSuffix: s.TrimGitSuffix,
		}),
		Locator:  locator(c.Apps, s.AppName),
		Env:      envscope.Process(),
		Stage:    tdm.New(runner),
		Runner:   runner,
		Shipper:  shipper,
		Archiver: archive.Zip{},
	})
	if err != nil {
		return err
	}

	if res.Outcome == build.OutcomeSkipped {
		slog.Info("build skipped", "build", res.BuildID, "tdVersion", s.TDVersion)
		return nil
	}

	slog.Info("build complete", "build", res.BuildID, "version", res.Version.Triple())
	return nil
}

// Returns the S3 shipper when an endpoint is configured, otherwise a local
// directory shipper.
func (c *BuildCmd) shipper() (logship.Shipper, error) {
	cfg := c.S3.config()
	if cfg.Enabled() {
		return logship.NewS3(cfg)
	}

	dir := c.Logs
	if dir == "" {
		dir = paths.Logs()
	}
	return logship.Dir{Path: dir}, nil
}

// Returns a manifest locator when path is set, otherwise the system locator.
func locator(path, appName string) registry.Locator {
	if path != "" {
		return registry.File{Path: path, AppName: appName}
	}
	return registry.System(appName)
}
