// Package parser turns kale source text into an abstract syntax tree.
//
// # Overview
//
// kale is a small expression language with two kinds of declarations:
//
//	extern sin(x)
//	def twice(x) x + x
//
// Any other top-level expression is wrapped in an anonymous function so the
// result of a parse is always a list of declarations.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│ TokenBuffer │────▶│   Parser    │
//	│  (text)     │     │  (tokens)   │     │  (cursor)   │     │   (AST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘     └─────────────┘
//
// # Incremental Parsing
//
// Parse never fails because input ended early. When the tokens run out in
// the middle of a declaration the tokens of that declaration are handed back
// unconsumed, and the caller appends more input and calls Parse again:
//
//	settings := parser.DefaultSettings()
//	toks, _ := parser.Tokenize("def foo(x, y")
//	ast, rest, _ := parser.Parse(toks, nil, settings)
//	// len(ast) == 0, rest holds def foo ( x , y
//
//	more, _ := parser.Tokenize(") x + y")
//	ast, rest, _ = parser.Parse(append(rest, more...), ast, settings)
//	// ast[0] is (def foo (x y) (+ x y)), rest is empty
//
// A *SyntaxError aborts the whole call. Declarations completed in earlier
// calls are not affected.
//
// # Expressions
//
// Binary operators are parsed by precedence climbing over the table in
// Settings. The default table is
//
//	<   10
//	+   20
//	-   20
//	*   40
//
// Operators of equal precedence associate to the left. An operator that is
// missing from the table is a syntax error when used between two operands;
// any operator may be used as a prefix.
//
// # Errors
//
// The lexer reports malformed input as a *LexError value. The parser reports
// structural problems as a *SyntaxError naming what was expected and the
// token that was found.
//
// # Thread Safety
//
// Lexer, TokenBuffer and Parser values are not safe for concurrent use.
// Settings may be shared between goroutines as long as nobody calls Define
// while a parse is running.
package parser
