package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhamidi/kale/format"
	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/tliron/commonlog"
)

const (
	PromptMain     = "ready> "
	PromptContinue = ". "
)

var log = commonlog.GetLogger("kale.repl")

// LineReader is the part of *liner.State the loop needs.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Stage selects how far input is taken before it is printed.
type Stage int

const (
	StageAST Stage = iota
	StageTokens
)

func ParseStage(name string) (Stage, error) {
	switch name {
	case "ast":
		return StageAST, nil
	case "tokens":
		return StageTokens, nil
	}
	return 0, fmt.Errorf("unknown stage %q (expected ast or tokens)", name)
}

func (s Stage) String() string {
	if s == StageTokens {
		return "tokens"
	}
	return "ast"
}

type Option func(*REPL)

func WithStage(stage Stage) Option {
	return func(r *REPL) {
		r.stage = stage
	}
}

func WithOutput(out, errOut io.Writer) Option {
	return func(r *REPL) {
		r.out = out
		r.errOut = errOut
	}
}

type REPL struct {
	in      LineReader
	session *Session
	stage   Stage
	out     io.Writer
	errOut  io.Writer
	red     *color.Color
}

func New(in LineReader, session *Session, opts ...Option) *REPL {
	r := &REPL{
		in:      in,
		session: session,
		out:     os.Stdout,
		errOut:  os.Stderr,
		red:     color.New(color.FgRed),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads lines until end of input or a quit command. Interrupting a
// prompt or quitting throws away the declaration being typed.
func (r *REPL) Run() error {
	for {
		prompt := PromptMain
		if r.session.Incomplete() {
			prompt = PromptContinue
		}

		line, err := r.in.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(r.out)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			log.Debug("input aborted", "pending", len(r.session.Pending()))
			r.session.Reset()
			continue
		case err != nil:
			return fmt.Errorf("read line: %w", err)
		}

		if isQuit(line) {
			if r.session.Incomplete() {
				fmt.Fprintln(r.errOut, "unfinished declaration discarded")
				r.session.Reset()
			}
			return nil
		}
		if strings.TrimSpace(line) != "" {
			r.in.AppendHistory(line)
		}
		r.eval(line)
	}
}

func isQuit(line string) bool {
	switch strings.TrimSpace(line) {
	case ".quit", ":quit":
		return true
	}
	return false
}

func (r *REPL) eval(line string) {
	if r.stage == StageTokens {
		tokens, err := r.session.Tokens(line)
		if err != nil {
			r.printError(err)
			return
		}
		if err := format.NewTokenEncoder(r.out).Encode(tokens); err != nil {
			log.Errorf("write tokens: %s", err)
		}
		return
	}

	res, err := r.session.Feed(line)
	if err != nil {
		r.printError(err)
		return
	}
	log.Debugf("parsed %d declarations, incomplete=%t", len(res.Nodes), res.Incomplete)
	if err := format.NewSExprEncoder(r.out).Encode(res.Nodes); err != nil {
		log.Errorf("write ast: %s", err)
	}
}

func (r *REPL) printError(err error) {
	r.red.Fprintf(r.errOut, "error: %s\n", err)
}
