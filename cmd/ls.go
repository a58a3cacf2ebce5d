package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pictorlabs/pictor/cli"
	"github.com/pictorlabs/pictor/pkg/listing"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
)

// NewLsCmd creates the `ls` command
func NewLsCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"ls [target]",
		"List the items of a folder or category",
	)
	cmd.Long = `List the contents of a collection folder or a virtual category (recent,
favorites, shared, trash). Folders sort before files, both alphabetically.`
	cmd.Args = cobra.MaximumNArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

		client, err := newClient(cmd)
		if err != nil {
			return handler.Handle(err)
		}
		defer client.Close()

		target := nav.Root()
		if len(args) == 1 {
			target = nav.ParseTarget(args[0])
		}

		store := listing.NewStore(client)
		result, err := store.Navigate(cmd.Context(), target)
		if err != nil {
			return handler.Handle(err)
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, err := json.MarshalIndent(result.Items, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal listing to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		printListing(cmd, result)
		return nil
	}

	return cmd
}

func printListing(cmd *cobra.Command, l *listing.Listing) {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)

	for _, item := range l.Items {
		kind := "file"
		if item.Kind == models.KindFolder {
			kind = "folder"
		}
		marks := ""
		if item.IsFavorite {
			marks += " ★"
		}
		if item.SharedBy != "" {
			marks += fmt.Sprintf(" (from %s)", item.SharedBy)
		}
		fmt.Fprintf(w, "%s\t%s%s\n", kind, item.Name, marks)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d items in %s\n", len(l.Items), l.Target)
}
