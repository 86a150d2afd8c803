package main

import (
	"fmt"

	"github.com/dhamidi/kale/format"
	"github.com/dhamidi/kale/kale/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd(g *globalFlags) *cobra.Command {
	var outputFormat string
	var includeComments bool

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Tokenize a .kl file or stdin and dump the tokens",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, filename, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			var tokens []parser.Token
			for tok, err := range parser.NewLexer(source, filename).All() {
				if err != nil {
					return err
				}
				if tok.Kind == parser.TokenComment && !includeComments {
					continue
				}
				tokens = append(tokens, tok)
			}

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "line":
				return format.NewTokenEncoder(out).Encode(tokens)
			case "json":
				return format.NewTokenJSONEncoder(out).Encode(tokens)
			}
			return fmt.Errorf("unknown format: %s", outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (line, json)")
	cmd.Flags().BoolVar(&includeComments, "comments", false, "include comment tokens")

	return cmd
}
