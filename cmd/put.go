package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pictorlabs/pictor/cli"
	"github.com/pictorlabs/pictor/pkg/nav"
)

// NewPutCmd creates the `put` command
func NewPutCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"put <file> [folder]",
		"Upload a file into a collection folder",
	)
	cmd.Long = `Upload a local file into a collection folder. The folder is created when it
does not exist yet; omit it to upload into the collection root.`
	cmd.Args = cobra.RangeArgs(1, 2)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

		client, err := newClient(cmd)
		if err != nil {
			return handler.Handle(err)
		}
		defer client.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return handler.Handle(err)
		}
		defer f.Close()

		folder := ""
		if len(args) == 2 {
			folder = nav.Canonicalize(args[1])
		}

		item, err := client.Upload(cmd.Context(), folder, filepath.Base(args[0]), f)
		if err != nil {
			return handler.Handle(err)
		}

		fmt.Printf("Uploaded %s (%d bytes)\n", item.Path, item.Size)
		return nil
	}

	return cmd
}
