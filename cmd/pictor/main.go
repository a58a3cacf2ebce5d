package main

import (
	"os"

	"github.com/pictorlabs/pictor/cli"
	"github.com/pictorlabs/pictor/cmd"
	"github.com/pictorlabs/pictor/version"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"pictor",
		"Browse and reorganize photo collections from the terminal",
	)
	cli.SetVersionTemplate(rootCmd, version.GetInfo())

	// Add subcommands
	rootCmd.AddCommand(cmd.NewBrowseCmd())
	rootCmd.AddCommand(cmd.NewLsCmd())
	rootCmd.AddCommand(cmd.NewMvCmd())
	rootCmd.AddCommand(cmd.NewPutCmd())
	rootCmd.AddCommand(cmd.NewServeCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
