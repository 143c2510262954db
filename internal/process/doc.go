// Package process runs host subprocesses described by OCI process specs.
//
// Every external program toxbuild drives (git, tdm, TouchDesigner) is
// described as a [specs.Process]: arguments, environment and working
// directory. A [Runner] starts the process, blocks until it exits and
// reports the exit code. A non-zero exit code is not an error; callers
// decide what it means.
//
// Example usage:
//
//	res, err := process.Host{Stdout: os.Stdout}.Run(ctx, process.Command(
//	    []string{"tdm", "install"}, env.Environ(), "TouchDesigner"))
//	if err != nil {
//	    return err
//	}
//	if res.ExitCode != 0 {
//	    ...
//	}
package process
