package tdm

import (
	"errors"
	"fmt"
)

var ErrStage = errors.New("dependency stage failed")

// A tdm subcommand that exited with a non-zero status.
type StageError struct {
	Subcommand string // "install" or "run".
	ExitCode   int    // Exit code reported by tdm.
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: tdm %s exited with code %d", ErrStage, e.Subcommand, e.ExitCode)
}

// Matches [ErrStage].
func (e *StageError) Is(target error) bool {
	return target == ErrStage
}
