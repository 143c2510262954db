package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal/version"
)

// Represents the 'toxbuild describe' command.
type DescribeCmd struct {
	Repo          string `short:"C" type:"path" default:"." help:"Repository to describe."`
	TrimGitSuffix bool   `help:"Strip a trailing .git from the remote source."`
	Full          bool   `help:"Print every field, including the remote source."`
}

// Executes the describe command.
func (c *DescribeCmd) Run(ctx context.Context) error {
	info, err := version.NewResolver(version.Options{
		Dir:           c.Repo,
		TrimGitSuffix: c.TrimGitSuffix,
	}).Resolve(ctx)
	if err != nil {
		return err
	}

	var v any = info.Map()
	if c.Full {
		v = info
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
