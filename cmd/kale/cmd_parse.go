package main

import (
	"fmt"

	"github.com/dhamidi/kale/format"
	"github.com/spf13/cobra"
)

func newParseCmd(g *globalFlags) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a .kl file or stdin and dump the syntax tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, filename, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			settings := g.settings()
			ast, err := parseSource(source, filename, settings)
			if err != nil {
				return err
			}
			log.Infof("parsed %d declarations", len(ast))

			enc, err := format.New(outputFormat, cmd.OutOrStdout(), settings)
			if err != nil {
				return err
			}
			if err := enc.Encode(ast); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "sexpr", "output format (sexpr, json, kale)")

	return cmd
}
