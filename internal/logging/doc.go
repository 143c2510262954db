// Package logging renders build progress as human-readable lines.
//
// [Handler] is a [log/slog.Handler] that writes one line per record:
//
//	2026-10-18 14:03:11.402118 | ----> setting var FOO = bar
//
// The number of "--" segments is the nesting depth of the step, set with
// the [Depth] attribute. Attributes other than the depth are appended only
// in verbose mode or for warnings and errors. Output is styled with
// lipgloss when the handler writes to a terminal.
//
// Example usage:
//
//	handler := logging.NewHandler(os.Stderr, &logging.Options{Color: true})
//	slog.SetDefault(slog.New(handler))
//	slog.Info("Setting Environment Variables", logging.Depth(1))
package logging
