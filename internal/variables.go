package internal

import (
	"fmt"
	"runtime"
	"strings"
)

const (

	// Name of the executable, used for logger groups and XDG subdirectories.
	Name = "toxbuild"

	// Placeholder for a variable that was not injected at link time.
	defaultUndefined = "(undefined)"

	// Reported instead of a version string for local (non-pipeline) builds.
	defaultLocalBuild = "(local)"

	// Release branch; its name is omitted from version strings.
	releaseBranch = "main"
)

// Injected with -ldflags "-X github.com/SudoMagicCode/action-build-td-tox-package/internal.<var>=...".
var (
	version   = "" // Release version of toxbuild itself (e.g., "1.4.0")
	stage     = "" // Git branch the binary was built from
	gitCommit = "" // Short commit hash the binary was built from

	rawQuiet   = "false"
	rawDebug   = "false"
	rawVerbose = "false"
)

// Returns the toxbuild release version without a leading "v".
//
// Returns "(undefined)" when the version was not injected.
func Version() string {
	v := strings.TrimSpace(version)
	if v == "" {
		return defaultUndefined
	}
	return strings.TrimPrefix(strings.ToLower(v), "v")
}

// Returns the branch toxbuild was built from, lowercased.
func Stage() string {
	s := strings.TrimSpace(stage)
	if s == "" {
		return defaultUndefined
	}
	return strings.ToLower(s)
}

// Returns the commit toxbuild was built from.
func GitCommit() string {
	c := strings.TrimSpace(gitCommit)
	if c == "" {
		return defaultUndefined
	}
	return c
}

// Returns true if any of the release variables is missing.
func IsLocal() bool {
	return strings.TrimSpace(version) == "" ||
		strings.TrimSpace(gitCommit) == "" ||
		strings.TrimSpace(stage) == ""
}

// Returns a one-line description of this binary.
//
// Local builds report "(local)". Release builds are formatted as
// "<version>[+<stage>] <commit> [<os>/<arch>]", omitting the stage for the
// release branch.
func VersionString() string {
	if IsLocal() {
		return defaultLocalBuild
	}

	s := ""
	if st := Stage(); st != releaseBranch {
		s = "+" + st
	}

	return fmt.Sprintf("%s%s %s [%s/%s]", Version(), s, GitCommit(), runtime.GOOS, runtime.GOARCH)
}
