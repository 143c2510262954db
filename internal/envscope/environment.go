package envscope

import (
	"os"
	"slices"
	"sync"
)

// A mutable set of environment variables.
type Environment interface {
	Setenv(key, value string) error
	Unsetenv(key string) error
	LookupEnv(key string) (string, bool)

	// Returns the variables as "key=value" strings for a subprocess.
	Environ() []string
}

// The environment of the current process.
type processEnv struct{}

// Returns the environment of the current process.
func Process() Environment {
	return processEnv{}
}

func (processEnv) Setenv(key, value string) error      { return os.Setenv(key, value) }
func (processEnv) Unsetenv(key string) error           { return os.Unsetenv(key) }
func (processEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (processEnv) Environ() []string                   { return os.Environ() }

// An in-memory environment. Safe for concurrent use.
type Map struct {
	mu   sync.Mutex
	vars map[string]string
}

// Creates a [Map] seeded with a copy of base.
func NewMap(base map[string]string) *Map {
	m := &Map{vars: make(map[string]string, len(base))}
	for k, v := range base {
		m.vars[k] = v
	}
	return m
}

// Implements [Environment].
func (m *Map) Setenv(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[key] = value
	return nil
}

// Implements [Environment].
func (m *Map) Unsetenv(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vars, key)
	return nil
}

// Implements [Environment].
func (m *Map) LookupEnv(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vars[key]
	return v, ok
}

// Implements [Environment]. Entries are sorted by key.
func (m *Map) Environ() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	env := make([]string, 0, len(m.vars))
	for k, v := range m.vars {
		env = append(env, k+"="+v)
	}
	slices.Sort(env)
	return env
}
