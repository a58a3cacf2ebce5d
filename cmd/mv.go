package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pictorlabs/pictor/cli"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/move"
	"github.com/pictorlabs/pictor/pkg/nav"
	"github.com/pictorlabs/pictor/pkg/notify"
)

// NewMvCmd creates the `mv` command
func NewMvCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"mv <source> <target-folder>",
		"Move an item into another folder",
	)
	cmd.Long = `Move a file or folder into a target folder. The target is a folder path;
use "" or "/" for the collection root. A folder cannot be moved into itself
or one of its descendants.`
	cmd.Args = cobra.ExactArgs(2)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

		client, err := newClient(cmd)
		if err != nil {
			return handler.Handle(err)
		}
		defer client.Close()

		req := models.MoveRequest{
			SourcePath: nav.Canonicalize(args[0]),
			TargetPath: nav.Canonicalize(args[1]),
		}

		svc := move.NewService(client, nil, notify.NewCenter())
		if err := svc.Move(cmd.Context(), req); err != nil {
			return handler.Handle(err)
		}

		fmt.Printf("Moved %s to %s\n", req.SourcePath, targetName(req.TargetPath))
		return nil
	}

	return cmd
}

func targetName(path string) string {
	if path == "" {
		return "the collection root"
	}
	return path
}
