package version

import "strings"

// Version identity of one build. Immutable once resolved.
type Info struct {
	Commit       string `json:"commit"`       // Abbreviated HEAD commit hash.
	Semver       string `json:"semver"`       // "<major>.<minor>.<patch>".
	Major        string `json:"major"`        // Major component of the lineage tag, without "v".
	Minor        string `json:"minor"`        // Minor component of the lineage tag.
	Patch        string `json:"patch"`        // Commits from the lineage point to HEAD.
	Branch       string `json:"branch"`       // Current branch, or "HEAD" when detached.
	RemoteOrigin string `json:"remoteOrigin"` // Origin URL as configured.
	RemoteSource string `json:"remoteSource"` // Origin URL without its scheme.
}

// Returns the release triple assembled from its parts.
func (i *Info) Triple() string {
	return i.Major + "." + i.Minor + "." + i.Patch
}

// Returns the dictionary view of the version info.
func (i *Info) Map() map[string]string {
	return map[string]string{
		"commit":    i.Commit,
		"semver":    i.Semver,
		"major":     i.Major,
		"minor":     i.Minor,
		"patch":     i.Patch,
		"branch":    i.Branch,
		"remoteUrl": i.RemoteOrigin,
	}
}

// Strips the transport scheme ("https://", "ssh://", ...) from a remote URL.
//
// Scp-style remotes ("git@host:org/repo.git") have no scheme and are
// returned unchanged. When trimGit is set a trailing ".git" is also removed.
func SourceFromRemote(remote string, trimGit bool) string {
	source := remote
	if i := strings.Index(source, "://"); i > 0 && !strings.ContainsAny(source[:i], "/@:") {
		source = source[i+len("://"):]
	}
	if trimGit {
		source = strings.TrimSuffix(source, ".git")
	}
	return source
}
