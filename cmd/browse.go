package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pictorlabs/pictor/cli"
	"github.com/pictorlabs/pictor/pkg/nav"
	"github.com/pictorlabs/pictor/tui"
	"github.com/pictorlabs/pictor/tui/browser"
)

// NewBrowseCmd creates the `browse` command
func NewBrowseCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"browse [target]",
		"Browse collections interactively",
	)
	cmd.Long = `This command launches an interactive TUI to navigate collections, drag items
between folders, and manage favorites and trash. The optional target is a
folder path or a category name (recent, favorites, shared, trash).`
	cmd.Args = cobra.MaximumNArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

		client, err := newClient(cmd)
		if err != nil {
			return handler.Handle(err)
		}
		defer client.Close()

		start := nav.Root()
		if len(args) == 1 {
			start = nav.ParseTarget(args[0])
		}

		model, err := browser.New(client, start)
		if err != nil {
			return handler.Handle(err)
		}

		tui.InitializeTUI()
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	}

	return cmd
}
