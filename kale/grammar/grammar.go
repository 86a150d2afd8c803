// Package grammar holds the reference grammar of kale in EBNF.
//
// The parser package is hand written; this grammar documents what it
// accepts and is checked against the lexer and parser in tests.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

//go:embed kale.ebnf
var Source []byte

// Start is the production a source file is derived from.
const Start = "Program"

// Load parses the embedded grammar and verifies it from Start.
func Load() (ebnf.Grammar, error) {
	return Check("kale.ebnf", bytes.NewReader(Source), Start)
}

// Check parses an EBNF grammar and, when start is not empty, verifies that
// every production is defined and reachable from it.
func Check(filename string, r io.Reader, start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if start == "" {
		return g, nil
	}
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// Literals returns the distinct string tokens used by the productions
// named, in sorted order.
func Literals(g ebnf.Grammar, names ...string) []string {
	seen := make(map[string]bool)
	for _, name := range names {
		if prod, ok := g[name]; ok {
			collectLiterals(prod.Expr, seen)
		}
	}
	lits := make([]string, 0, len(seen))
	for lit := range seen {
		lits = append(lits, lit)
	}
	sort.Strings(lits)
	return lits
}

func collectLiterals(expr ebnf.Expression, seen map[string]bool) {
	switch e := expr.(type) {
	case ebnf.Alternative:
		for _, x := range e {
			collectLiterals(x, seen)
		}
	case ebnf.Sequence:
		for _, x := range e {
			collectLiterals(x, seen)
		}
	case *ebnf.Group:
		collectLiterals(e.Body, seen)
	case *ebnf.Option:
		collectLiterals(e.Body, seen)
	case *ebnf.Repetition:
		collectLiterals(e.Body, seen)
	case *ebnf.Token:
		seen[e.String] = true
	}
}

// Productions lists the non-lexical productions, sorted by name.
func Productions(g ebnf.Grammar) []string {
	var names []string
	for name := range g {
		if !isLexical(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// isLexical follows ebnf's convention: token productions start in lower case.
func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}
