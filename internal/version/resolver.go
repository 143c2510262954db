package version

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal/logging"
)

// Glob selecting release-line tags.
const tagPattern = "v[0-9]*.[0-9]*"

// Configures a [Resolver].
type Options struct {
	Dir           string // Working tree. Empty uses the current directory.
	TrimGitSuffix bool   // Strip a trailing ".git" from the remote source.
	Git           Git    // Overrides the git backend. Nil runs git in Dir.
}

// Resolves version info from git history.
type Resolver struct {
	git     Git
	trimGit bool
}

// Creates a [Resolver] from the given options.
func NewResolver(opts Options) *Resolver {
	git := opts.Git
	if git == nil {
		git = CommandGit{Dir: opts.Dir}
	}
	return &Resolver{git: git, trimGit: opts.TrimGitSuffix}
}

// Resolves the version of HEAD.
//
// Every failure, including a missing tag or a directory that is not a git
// repository, wraps [ErrResolution].
func (r *Resolver) Resolve(ctx context.Context) (*Info, error) {
	info, err := r.resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResolution, err)
	}

	slog.Debug("version resolved",
		"semver", info.Semver,
		"branch", info.Branch,
		"commit", info.Commit,
		logging.Depth(2),
	)

	return info, nil
}

func (r *Resolver) resolve(ctx context.Context) (*Info, error) {
	tag, err := r.git.Output(ctx, "describe", "--tags", "--abbrev=0", "--match", tagPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTag, err)
	}

	major, minor, err := parseTag(tag)
	if err != nil {
		return nil, err
	}

	lineage, err := r.lineagePoint(ctx, tag, major, minor)
	if err != nil {
		return nil, err
	}

	patch, err := r.git.Output(ctx, "rev-list", "--count", lineage+"..HEAD")
	if err != nil {
		return nil, err
	}
	if _, err := strconv.ParseUint(patch, 10, 64); err != nil {
		return nil, fmt.Errorf("unexpected commit count %q", patch)
	}

	branch, err := r.git.Output(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return nil, err
	}

	commit, err := r.git.Output(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return nil, err
	}

	remote, err := r.git.Output(ctx, "remote", "get-url", "origin")
	if err != nil {
		return nil, err
	}

	info := &Info{
		Commit:       commit,
		Major:        major,
		Minor:        minor,
		Patch:        patch,
		Branch:       branch,
		RemoteOrigin: remote,
		RemoteSource: SourceFromRemote(remote, r.trimGit),
	}
	info.Semver = info.Triple()

	return info, nil
}

// Returns the ref patch distances are measured from.
//
// The lineage point is the "v<major>.<minor>" tag. Lines tagged only with
// full triples (e.g. "v1.2.0") have no such ref, in which case the described
// tag itself is the lineage point.
func (r *Resolver) lineagePoint(ctx context.Context, tag, major, minor string) (string, error) {
	lineage := "v" + major + "." + minor
	if lineage == tag {
		return tag, nil
	}
	if _, err := r.git.Output(ctx, "rev-parse", "--verify", "--quiet", "refs/tags/"+lineage); err != nil {
		slog.Debug("no lineage tag, counting from described tag", "lineage", lineage, "tag", tag)
		return tag, nil
	}
	return lineage, nil
}

// Splits a release tag into its major and minor components.
//
// Accepts "v<major>.<minor>" with an optional ".<anything>" tail, which is
// discarded. Both components must be non-negative integers.
func parseTag(tag string) (major, minor string, err error) {
	parts := strings.Split(strings.TrimSpace(tag), ".")
	if len(parts) < 2 || !strings.HasPrefix(parts[0], "v") {
		return "", "", fmt.Errorf("%w: %q", ErrMalformed, tag)
	}

	major = strings.TrimPrefix(parts[0], "v")
	minor = parts[1]

	for _, n := range []string{major, minor} {
		if _, err := strconv.ParseUint(n, 10, 64); err != nil {
			return "", "", fmt.Errorf("%w: %q", ErrMalformed, tag)
		}
	}

	return major, minor, nil
}
