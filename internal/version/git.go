package version

import (
	"context"
	"fmt"
	"strings"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal/process"
)

// Answers git queries against a working tree.
type Git interface {
	// Runs git with args and returns its trimmed standard output. A non-zero
	// exit status is an error.
	Output(ctx context.Context, args ...string) (string, error)
}

// Runs the git executable in a directory.
type CommandGit struct {
	Dir    string         // Working tree. Empty uses the current directory.
	Binary string         // Git executable. Empty uses "git" from PATH.
	Runner process.Runner // Process runner. Nil uses [process.Host].
}

// Implements [Git].
func (g CommandGit) Output(ctx context.Context, args ...string) (string, error) {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}
	runner := g.Runner
	if runner == nil {
		runner = process.Host{}
	}

	res, err := runner.Run(ctx, process.Command(append([]string{bin}, args...), nil, g.Dir))
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("git %s: exit code %d: %s", strings.Join(args, " "), res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return strings.TrimSpace(res.Stdout), nil
}
