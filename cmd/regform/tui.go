package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/renderers/bubble"
)

func newTUICmd(a *app) *cobra.Command {
	var altScreen bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Fill the form in a full-screen terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireTerminal("tui", os.Stdin, os.Stdout); err != nil {
				return err
			}
			return a.runSession(cmd, bubble.New(bubble.WithAltScreen(altScreen)))
		},
	}
	cmd.Flags().BoolVar(&altScreen, "alt-screen", true, "use the terminal's alternate screen")
	return cmd
}
