package main

import (
	"os"
	"path/filepath"

	"github.com/dhamidi/kale/kale/repl"
	"github.com/spf13/cobra"
)

const historyFile = ".kale_history"

func newReplCmd(g *globalFlags) *cobra.Command {
	var stageName string
	var historyPath string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read kale declarations interactively",
		Long: `Read kale declarations line by line and print each completed
declaration as an S-expression. A declaration may span several lines; the
prompt changes to ". " while one is unfinished.

Type .quit or press Ctrl-D to exit. Ctrl-C discards the unfinished
declaration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, err := repl.ParseStage(stageName)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("history") {
				if home, err := os.UserHomeDir(); err == nil {
					historyPath = filepath.Join(home, historyFile)
				}
			}

			session := repl.NewSession(g.settings(), repl.WithFile("repl"))
			return repl.RunTerminal(session, historyPath,
				repl.WithStage(stage),
				repl.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
			)
		},
	}

	cmd.Flags().StringVar(&stageName, "stage", "ast", "stop after this stage (tokens, ast)")
	cmd.Flags().StringVar(&historyPath, "history", "", "history file (default ~/"+historyFile+", empty disables)")

	return cmd
}
