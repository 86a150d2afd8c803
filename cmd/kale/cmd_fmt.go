package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhamidi/kale/format"
	"github.com/spf13/cobra"
)

func newFmtCmd(g *globalFlags) *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print a .kl file in canonical form",
		Long: `Print a .kl file in canonical form to stdout.

If a file is provided, it must have a .kl extension.
If no file is provided, reads kale source from stdin.
Comments are not preserved.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && fmtOverwrite {
				return fmt.Errorf("-w requires a file argument")
			}
			if len(args) == 1 {
				if ext := filepath.Ext(args[0]); ext != ".kl" {
					return fmt.Errorf("expected .kl file, got %s", ext)
				}
			}

			source, filename, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			settings := g.settings()
			ast, err := parseSource(source, filename, settings)
			if err != nil {
				return err
			}

			output, err := format.NewSourcePrinter(nil, settings).MarshalText(ast)
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtOverwrite {
				return os.WriteFile(filename, output, 0644)
			}
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
