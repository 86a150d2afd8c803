package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		in   string
		want string
	}{
		{"sexpr", []string{"parse"}, "def f(x) x + 1\nf(2)", "(def f (x) (+ x 1))\n(call f 2)\n"},
		{"kale", []string{"parse", "-f", "kale"}, "1+2*3", "1 + 2 * 3;\n"},
		{"custom operator", []string{"--op", "/=40", "parse"}, "8 / 2 - 1", "(- (/ 8 2) 1)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.in, tt.args...)
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"incomplete", "def f(x", "1:1: incomplete input"},
		{"syntax", "1 / 2", "unknown operator found"},
		{"lexical", "x @", "unexpected character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.in, "parse")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}

	if _, err := run(t, "1", "parse", "-f", "xml"); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestTokensCommand(t *testing.T) {
	got, err := run(t, "f(1) // x", "tokens")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := "1:1\tIdentifier\tf\n1:2\t(\n1:3\tNumber\t1\n1:4\t)\n1:10\tEOF\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	got, err = run(t, "// x", "tokens", "--comments", "-f", "json")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(got, `"kind": "Comment"`) {
		t.Errorf("output = %s, want a comment token", got)
	}
}

func TestFmtCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.kl")
	if err := os.WriteFile(path, []byte("extern sin(x)\ndef f(a,b) (a+b)*sin(a)"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "", "fmt", "-w", path); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "extern sin(x);\ndef f(a, b) (a + b) * sin(a);\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}

	if _, err := run(t, "1", "fmt", "-w"); err == nil {
		t.Error("-w without a file accepted")
	}
	if _, err := run(t, "", "fmt", "a.txt"); err == nil {
		t.Error("non-.kl file accepted")
	}
}

func TestGrammarCommand(t *testing.T) {
	got, err := run(t, "", "grammar")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(got, `Extern      = "extern" Prototype .`) {
		t.Errorf("output does not contain the grammar:\n%s", got)
	}

	path := filepath.Join(t.TempDir(), "bad.ebnf")
	if err := os.WriteFile(path, []byte(`Program = Missing .`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "grammar", "check", path); err == nil {
		t.Error("grammar with an undefined production accepted")
	}
}
