package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pictorlabs/pictor/cli"
)

// NewVersionCmd creates the `version` command
func NewVersionCmd() *cobra.Command {
	return cli.NewVersionCommand("pictor")
}
