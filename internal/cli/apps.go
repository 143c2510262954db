package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Represents the 'toxbuild apps' command.
type AppsCmd struct {
	Apps    string `type:"path" placeholder:"PATH" help:"Read installed applications from a YAML manifest instead of the system."`
	AppName string `name:"app-name" default:"TouchDesigner" help:"Application name to match."`
}

// Executes the apps command.
func (c *AppsCmd) Run(ctx context.Context) error {
	installed, err := locator(c.Apps, c.AppName).Installed(ctx)
	if err != nil {
		return err
	}

	if len(installed) == 0 {
		fmt.Printf("no %s installations found\n", c.AppName)
		return nil
	}

	bold := lipgloss.NewStyle().Bold(true)
	for _, e := range installed.Entries() {
		fmt.Printf("%s  %s\n", bold.Render(e.Version), e.Path)
	}
	return nil
}
