package envscope

import "errors"

var (
	ErrScopeActive   = errors.New("an environment scope is already active on the process environment")
	ErrInvalidKey    = errors.New("invalid environment variable name")
	ErrKeyNotInScope = errors.New("environment variable was not set by this scope")
)
