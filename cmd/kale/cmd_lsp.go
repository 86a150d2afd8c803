package main

import (
	"github.com/dhamidi/kale/kale/codebase"
	"github.com/spf13/cobra"
)

func newLSPCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version, g.settings())
			return server.RunStdio()
		},
	}
}
