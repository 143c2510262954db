// Package settings loads and validates build-settings documents.
//
// A document is JSON or YAML, chosen by file extension (".yaml" and ".yml"
// are YAML, anything else is JSON):
//
//	{
//	    "destDir": "dist",
//	    "packageDir": "dist/package",
//	    "logFile": "logs/td.log",
//	    "projectFile": "TouchDesigner/project.toe",
//	    "tdVersion": "2023.11340",
//	    "buildContents": "packageZip",
//	    "envVars": {"FOO": "bar"},
//	    "useTdm": true
//	}
//
// Every validation failure matches both [ErrInvalid] and
// [errdefs.ErrInvalidArgument], and is reported before a build touches
// anything.
package settings
