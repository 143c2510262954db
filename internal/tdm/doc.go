// Package tdm drives the TouchDesigner dependency manager.
//
// [Stage.Install] runs "tdm install" and [Stage.Run] runs "tdm run", each
// inside the project directory and each blocking until tdm exits. A
// non-zero exit is returned as a [*StageError] carrying the subcommand and
// exit code; it matches [ErrStage]. Nothing is retried.
package tdm
