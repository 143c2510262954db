// Package build orchestrates a TouchDesigner package build.
//
// A build moves through a fixed sequence of states:
//
//	Idle → DirectoriesVerified → VersionResolved → EnvironmentApplied →
//	ApplicationLocated → [DependenciesInstalled] → ApplicationRun →
//	LogCollected → [Archived] → EnvironmentCleared → Done
//
// Any step can end in Failed instead. The destination directory is created,
// a version is resolved from git, the build's environment variables are
// applied, the requested TouchDesigner version is looked up, tdm installs
// the project's dependencies, the application runs and writes the package,
// its log is shipped, and for packageZip builds the package directory is
// zipped. The environment scope is released on every path once it was
// entered, including failures.
//
// When the requested TouchDesigner version is not installed the build stops
// early with [OutcomeSkipped] and a nil error: nothing is installed or run,
// but the environment is still cleared.
//
// The application is started by one of two [Launcher] strategies selected
// by the settings' launch mode: [DirectLauncher] runs the executable with
// the project file, [TDMLauncher] delegates to "tdm run".
//
// Builds run strictly sequentially and every external call blocks. At most
// one build may run per process when the process environment is used.
//
// Example usage:
//
//	result, err := build.Run(ctx, build.Options{
//	    Settings: s,
//	    Resolver: version.NewResolver(version.Options{}),
//	    Locator:  registry.System(s.AppName),
//	    Env:      envscope.Process(),
//	    Stage:    tdm.New(runner),
//	    Runner:   runner,
//	    Shipper:  logship.Dir{Path: paths.Logs()},
//	    Archiver: archive.Zip{},
//	})
//	if err != nil {
//	    return err
//	}
package build
