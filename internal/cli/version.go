package cli

import (
	"context"
	"fmt"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal"
)

// Represents the 'toxbuild version' command.
type VersionCmd struct{}

// Executes the version command.
func (c *VersionCmd) Run(ctx context.Context) error {
	fmt.Println(internal.VersionString())
	return nil
}
