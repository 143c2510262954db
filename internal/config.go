package internal

import (
	"strconv"
	"sync/atomic"
)

// Output modes, seeded from linker flags and overridden by CLI flags.
var (
	quietMode   atomic.Bool
	debugMode   atomic.Bool
	verboseMode atomic.Bool
)

func init() {
	parseMode(rawQuiet, &quietMode)
	parseMode(rawDebug, &debugMode)
	parseMode(rawVerbose, &verboseMode)
}

// Stores a linker-flag boolean. Unparseable values leave the mode unset.
func parseMode(raw string, mode *atomic.Bool) {
	if v, err := strconv.ParseBool(raw); err == nil {
		mode.Store(v)
	}
}

// Enables or disables quiet mode (warnings and errors only).
func SetQuiet(enabled bool) { quietMode.Store(enabled) }

// Returns true if quiet mode is enabled.
func IsQuiet() bool { return quietMode.Load() }

// Enables or disables debug logging.
func SetDebug(enabled bool) { debugMode.Store(enabled) }

// Returns true if debug logging is enabled.
func IsDebug() bool { return debugMode.Load() }

// Enables or disables verbose output, which adds log attributes to each
// progress line.
func SetVerbose(enabled bool) { verboseMode.Store(enabled) }

// Returns true if verbose output is enabled.
func IsVerbose() bool { return verboseMode.Load() }
