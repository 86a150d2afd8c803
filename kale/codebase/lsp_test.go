package codebase

import (
	"path/filepath"
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type notification struct {
	method string
	params any
}

func newTestServer(t *testing.T) (*LSPServer, *glsp.Context, *[]notification) {
	t.Helper()
	dir := t.TempDir()
	ls := NewLSPServer("test", nil)

	var sent []notification
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			sent = append(sent, notification{method, params})
		},
	}
	if _, err := ls.initialize(ctx, &protocol.InitializeParams{RootPath: &dir}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return ls, ctx, &sent
}

func lastDiagnostics(t *testing.T, sent []notification) protocol.PublishDiagnosticsParams {
	t.Helper()
	if len(sent) == 0 {
		t.Fatal("no notifications sent")
	}
	last := sent[len(sent)-1]
	if last.method != protocol.ServerTextDocumentPublishDiagnostics {
		t.Fatalf("method = %s, want %s", last.method, protocol.ServerTextDocumentPublishDiagnostics)
	}
	return last.params.(protocol.PublishDiagnosticsParams)
}

func TestLSPPublishesDiagnostics(t *testing.T) {
	ls, ctx, sent := newTestServer(t)
	uri := "file://" + filepath.Join(ls.codebase.RootDir(), "a.kl")

	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "kale", Text: "def f(x) x +\n  )"},
	})
	if err != nil {
		t.Fatalf("didOpen: %v", err)
	}
	params := lastDiagnostics(t, *sent)
	if params.URI != uri {
		t.Errorf("URI = %s, want %s", params.URI, uri)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(params.Diagnostics))
	}
	d := params.Diagnostics[0]
	if d.Range.Start.Line != 1 || d.Range.Start.Character != 2 {
		t.Errorf("range start = %+v, want 1:2", d.Range.Start)
	}
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("Severity = %v, want error", d.Severity)
	}

	err = ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "def f(x) x + 1"}},
	})
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}
	params = lastDiagnostics(t, *sent)
	if params.Diagnostics == nil || len(params.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want an empty list", params.Diagnostics)
	}
}

func TestLSPDocumentSymbols(t *testing.T) {
	ls, ctx, _ := newTestServer(t)
	uri := "file://" + filepath.Join(ls.codebase.RootDir(), "a.kl")
	ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "extern sin(x)\ndef twice(x) x * 2"},
	})

	result, err := ls.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatalf("documentSymbol: %v", err)
	}
	symbols := result.([]protocol.DocumentSymbol)
	if len(symbols) != 2 {
		t.Fatalf("got %d symbols, want 2", len(symbols))
	}
	if symbols[1].Name != "twice" || symbols[1].Kind != protocol.SymbolKindFunction {
		t.Errorf("symbols[1] = %+v", symbols[1])
	}
	if symbols[1].Range.Start.Line != 1 || symbols[1].Range.End.Character != 18 {
		t.Errorf("range = %+v", symbols[1].Range)
	}
}

func TestLSPCompletion(t *testing.T) {
	ls, ctx, _ := newTestServer(t)
	uri := "file://" + filepath.Join(ls.codebase.RootDir(), "a.kl")
	ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "def square(x) x * x\nsq"},
	})

	result, err := ls.textDocumentCompletion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 1, Character: 2},
		},
	})
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	items := result.([]protocol.CompletionItem)
	if len(items) != 1 || items[0].Label != "square" {
		t.Fatalf("items = %+v", items)
	}
	if *items[0].Kind != protocol.CompletionItemKindFunction || *items[0].InsertTextFormat != protocol.InsertTextFormatSnippet {
		t.Errorf("item = %+v", items[0])
	}
}

func TestURIConversion(t *testing.T) {
	path, err := uriToPath("file:///tmp/a%20b/x.kl")
	if err != nil {
		t.Fatalf("uriToPath: %v", err)
	}
	if path != "/tmp/a b/x.kl" {
		t.Errorf("path = %q", path)
	}
	if got := pathToURI("/tmp/a b/x.kl"); got != "file:///tmp/a%20b/x.kl" {
		t.Errorf("pathToURI = %q", got)
	}
	if got, _ := uriToPath("untitled:1"); got != "untitled:1" {
		t.Errorf("uriToPath(untitled:1) = %q", got)
	}
}

func TestLSPDidCloseReloadsDisk(t *testing.T) {
	ls, ctx, sent := newTestServer(t)
	path := filepath.Join(ls.codebase.RootDir(), "a.kl")
	writeFile(t, path, "def f(x) x")
	uri := "file://" + path

	ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "def f(x"},
	})
	if got := len(lastDiagnostics(t, *sent).Diagnostics); got != 1 {
		t.Fatalf("got %d diagnostics for the unsaved text, want 1", got)
	}

	err := ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatalf("didClose: %v", err)
	}
	if got := len(lastDiagnostics(t, *sent).Diagnostics); got != 0 {
		t.Errorf("got %d diagnostics after close, want the clean file on disk", got)
	}
	if ls.codebase.IsOpen(path) {
		t.Error("file still open after didClose")
	}
}
