package logship

import "errors"

var (
	ErrShip       = errors.New("log shipping failed")
	ErrConfig     = errors.New("invalid log shipping configuration")
	ErrMissingLog = errors.New("log file not found")
)
