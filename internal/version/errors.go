package version

import "errors"

var (
	ErrResolution = errors.New("version resolution failed")
	ErrNoTag      = errors.New("no version tag found")
	ErrMalformed  = errors.New("malformed version tag")
)
