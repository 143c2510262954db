package envscope

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal/logging"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/version"
)

const (

	// Receives "<major>.<minor>.<patch>" of the build.
	VersionKey = "SM_TOXVERSION"

	// Receives the origin remote without its scheme.
	RepoKey = "SM_REPO"
)

// Set while a scope is open on the process environment.
var processActive atomic.Bool

// Variables injected for one build.
type Scope struct {
	env     Environment
	keys    []string
	owned   map[string]struct{}
	process bool
	closed  bool
}

// Opens a scope: sets every variable in vars, then [VersionKey] and
// [RepoKey] derived from info.
//
// Variables are set in key order. If any variable cannot be set, the ones
// already set are removed again and an error is returned.
func Enter(env Environment, vars map[string]string, info *version.Info) (*Scope, error) {
	for key := range vars {
		if err := validateKey(key); err != nil {
			return nil, err
		}
	}

	_, isProcess := env.(processEnv)
	if isProcess && !processActive.CompareAndSwap(false, true) {
		return nil, ErrScopeActive
	}

	s := &Scope{
		env:     env,
		owned:   make(map[string]struct{}, len(vars)+2),
		process: isProcess,
	}

	slog.Info("Setting Environment Variables", logging.Depth(1))

	for _, key := range slices.Sorted(maps.Keys(vars)) {
		if err := s.set(key, vars[key]); err != nil {
			s.Exit()
			return nil, err
		}
	}

	// Derived from the parts, not from Semver.
	if err := s.set(VersionKey, info.Triple()); err != nil {
		s.Exit()
		return nil, err
	}
	if err := s.set(RepoKey, info.RemoteSource); err != nil {
		s.Exit()
		return nil, err
	}

	return s, nil
}

// Returns the keys set by the scope, in the order they were set.
func (s *Scope) Keys() []string {
	return slices.Clone(s.keys)
}

// Returns the full environment, for passing to subprocesses.
func (s *Scope) Environ() []string {
	return s.env.Environ()
}

// Removes every variable set by the scope.
//
// Keys that have already disappeared from the environment are skipped.
// Calling Exit more than once is a no-op.
func (s *Scope) Exit() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.process {
		defer processActive.Store(false)
	}

	slog.Info("Cleaning up Environment Variables", logging.Depth(1))

	var errs []error
	for _, key := range s.keys {
		if err := s.remove(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Sets one variable and takes ownership of its key.
func (s *Scope) set(key, value string) error {
	if err := s.env.Setenv(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	if _, ok := s.owned[key]; !ok {
		s.owned[key] = struct{}{}
		s.keys = append(s.keys, key)
	}
	slog.Info(fmt.Sprintf("setting var %s = %s", strings.ToUpper(key), value), logging.Depth(2))
	return nil
}

// Removes one variable owned by the scope.
//
// Removing a key the scope never set is a programming error and returns
// [ErrKeyNotInScope] without touching the environment.
func (s *Scope) remove(key string) error {
	if _, ok := s.owned[key]; !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotInScope, key)
	}

	if _, ok := s.env.LookupEnv(key); !ok {
		slog.Debug("variable already removed", "key", key, logging.Depth(2))
		return nil
	}

	if err := s.env.Unsetenv(key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	slog.Info("removing var "+strings.ToUpper(key), logging.Depth(2))
	return nil
}

// Rejects names no platform accepts.
func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, "=\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
