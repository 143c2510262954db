// Package envscope binds environment variables to the lifetime of a build.
//
// A [Scope] is opened with [Enter] on an [Environment]: it sets the
// caller's variables plus two derived ones, [VersionKey] and [RepoKey], and
// remembers every key it set. [Scope.Exit] removes exactly those keys and
// nothing else. Callers defer Exit right after a successful Enter so the
// variables are released on every return path.
//
// The environment is an explicit value. [Process] writes the real process
// environment, which subprocesses then inherit; only one scope may be open
// on it at a time. [NewMap] keeps variables in memory and is suitable for
// tests or for passing an environment to subprocesses explicitly through
// [Environment.Environ].
//
// Example usage:
//
//	scope, err := envscope.Enter(envscope.Process(), settings.EnvVars, info)
//	if err != nil {
//	    return err
//	}
//	defer scope.Exit()
package envscope
