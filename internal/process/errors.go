package process

import "errors"

var (
	ErrStart     = errors.New("process could not be started")
	ErrEmptyArgs = errors.New("process has no arguments")
)
