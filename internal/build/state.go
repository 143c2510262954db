package build

import "fmt"

// A step of the build state machine.
type State int

const (
	StateIdle State = iota
	StateDirectoriesVerified
	StateVersionResolved
	StateEnvironmentApplied
	StateApplicationLocated
	StateDependenciesInstalled
	StateApplicationRun
	StateLogCollected
	StateArchived
	StateEnvironmentCleared
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:                  "idle",
	StateDirectoriesVerified:   "directories-verified",
	StateVersionResolved:       "version-resolved",
	StateEnvironmentApplied:    "environment-applied",
	StateApplicationLocated:    "application-located",
	StateDependenciesInstalled: "dependencies-installed",
	StateApplicationRun:        "application-run",
	StateLogCollected:          "log-collected",
	StateArchived:              "archived",
	StateEnvironmentCleared:    "environment-cleared",
	StateDone:                  "done",
	StateFailed:                "failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// How a build ended without error.
type Outcome int

const (
	OutcomeCompleted Outcome = iota // The application ran and the package was produced.
	OutcomeSkipped                  // The requested application version is not installed.
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeSkipped:
		return "skipped"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}
