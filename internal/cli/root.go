package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/logging"
	"github.com/alecthomas/kong"
)

// Represents the root command for toxbuild.
var RootCmd struct {
	Quiet    bool        `short:"q" help:"Suppress informational output."`
	Verbose  bool        `short:"v" help:"Enable verbose output."`
	Debug    bool        `short:"d" help:"Enable debug output."`
	Build    BuildCmd    `cmd:"" default:"withargs" help:"Build a tox package from a settings document."`
	Describe DescribeCmd `cmd:"" help:"Print the version info of a repository as JSON."`
	Apps     AppsCmd     `cmd:"" help:"List installed TouchDesigner versions."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
//
// SIGINT and SIGTERM cancel the command's context, which stops any running
// subprocess. Deferred cleanup still runs before Execute returns.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Release builds for TouchDesigner tox packages.\n\nResolves the package version from git, prepares the build environment, drives TouchDesigner and tdm, ships the run log and archives the package."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	handler, ok := slog.Default().Handler().(*logging.Handler)
	if !ok {
		return // Not a progress handler, nothing to configure
	}

	debug := RootCmd.Debug || internal.IsDebug()
	quiet := RootCmd.Quiet || internal.IsQuiet()
	verbose := RootCmd.Verbose || internal.IsVerbose()

	if debug {
		handler.SetLevel(slog.LevelDebug)
	} else if quiet {
		handler.SetLevel(slog.LevelWarn)
	} else {
		handler.SetLevel(slog.LevelInfo)
	}

	handler.SetVerbose(verbose || debug)
	handler.SetOutput(os.Stderr, isatty(os.Stderr))
}

// Whether the given file is an interactive terminal.
func isatty(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
