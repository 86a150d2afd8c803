package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dhamidi/kale/kale/parser"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("kale.cli")

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose   int
	logFile   string
	operators map[string]int
}

// settings returns the default operator table extended by --op.
func (g *globalFlags) settings() *parser.Settings {
	s := parser.DefaultSettings()
	ops := make([]string, 0, len(g.operators))
	for op := range g.operators {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	for _, op := range ops {
		log.Debugf("operator %s has precedence %d", op, g.operators[op])
		s.Define(op, g.operators[op])
	}
	return s
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "kale",
		Short:         "Tokenizer, parser and tooling for the kale language",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if g.logFile != "" {
				path = &g.logFile
			}
			commonlog.Configure(g.verbose, path)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringToIntVar(&g.operators, "op", nil, "define a binary operator precedence, e.g. --op /=40")

	rootCmd.AddCommand(newTokensCmd(g))
	rootCmd.AddCommand(newParseCmd(g))
	rootCmd.AddCommand(newFmtCmd(g))
	rootCmd.AddCommand(newReplCmd(g))
	rootCmd.AddCommand(newLSPCmd(g))
	rootCmd.AddCommand(newGrammarCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kale:", err)
		os.Exit(1)
	}
}

// readSource reads the named file, or stdin when no file is given.
func readSource(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return data, args[0], nil
}

// parseSource parses a complete program. Input that stops in the middle of
// a declaration is an error here, unlike in the REPL.
func parseSource(source []byte, filename string, settings *parser.Settings) ([]parser.Node, error) {
	var tokens []parser.Token
	for tok, err := range parser.NewLexer(source, filename).All() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}

	ast, rest, err := parser.Parse(tokens, nil, settings)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%s: incomplete input", rest[0].Span.Start)
	}
	return ast, nil
}
