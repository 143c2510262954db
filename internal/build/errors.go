package build

import "errors"

var (
	ErrBuild               = errors.New("build failed")
	ErrOptions             = errors.New("invalid build options")
	ErrFileSystemOperation = errors.New("file system operation failed")
	ErrEnvironment         = errors.New("environment scope failed")
	ErrLaunch              = errors.New("application launch failed")
)
