package archive

import "errors"

var (
	ErrArchive    = errors.New("archive creation failed")
	ErrNotADir    = errors.New("package path is not a directory")
	ErrInsideTree = errors.New("archive destination is inside the package directory")
)
