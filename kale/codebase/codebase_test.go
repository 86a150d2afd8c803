package codebase

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dhamidi/kale/kale/parser"
)

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
		line    int
		column  int
	}{
		{"clean", "def f(x) x + 1\nextern g()", "", 0, 0},
		{"syntax error", "def f(x) x +\n  )", "unknown token when expecting an expression", 2, 3},
		{"unknown operator", "1 / 2", "unknown operator found", 1, 3},
		{"lexical error", "extern f(x)\n\"open", "unterminated string literal", 2, 1},
		{"unexpected character", "x @", "unexpected character", 1, 3},
		{"unfinished declaration", "extern f(x)\ndef g(a,", "unexpected end of input", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("/tmp/kale", nil)
			c.UpdateFile("/tmp/kale/a.kl", []byte(tt.content))
			f := c.GetFile("/tmp/kale/a.kl")
			if f == nil {
				t.Fatal("GetFile returned nil")
			}

			if tt.message == "" {
				if len(f.Diagnostics) != 0 {
					t.Errorf("Diagnostics = %+v, want none", f.Diagnostics)
				}
				return
			}
			if len(f.Diagnostics) != 1 {
				t.Fatalf("got %d diagnostics, want 1", len(f.Diagnostics))
			}
			d := f.Diagnostics[0]
			if !strings.Contains(d.Message, tt.message) {
				t.Errorf("Message = %q, want it to contain %q", d.Message, tt.message)
			}
			if d.Span.Start.Line != tt.line || d.Span.Start.Column != tt.column {
				t.Errorf("start = %d:%d, want %d:%d", d.Span.Start.Line, d.Span.Start.Column, tt.line, tt.column)
			}
		})
	}
}

func TestUnfinishedDeclarationKeepsEarlierSymbols(t *testing.T) {
	c := New("/tmp/kale", nil)
	c.UpdateFile("/tmp/kale/a.kl", []byte("extern f(x)\ndef g(a,"))
	symbols := c.Symbols("/tmp/kale/a.kl")
	if len(symbols) != 1 || symbols[0].Name != "f" {
		t.Errorf("symbols = %+v, want f", symbols)
	}
}

func TestSymbols(t *testing.T) {
	c := New("/tmp/kale", nil)
	c.UpdateFile("/tmp/kale/a.kl", []byte("extern sin(x)\n1 + 2\ndef twice(x) x * 2"))

	symbols := c.Symbols("/tmp/kale/a.kl")
	if len(symbols) != 2 {
		t.Fatalf("got %d symbols, want 2", len(symbols))
	}
	if symbols[0].Name != "sin" || symbols[0].Kind != SymbolExtern || symbols[0].Detail != "extern sin(x)" {
		t.Errorf("symbols[0] = %+v", symbols[0])
	}
	if symbols[1].Name != "twice" || symbols[1].Kind != SymbolFunction || symbols[1].Detail != "def twice(x)" {
		t.Errorf("symbols[1] = %+v", symbols[1])
	}
	if symbols[1].Span.Start.Line != 3 || symbols[1].Span.End.Column != 19 {
		t.Errorf("twice span = %v - %v", symbols[1].Span.Start, symbols[1].Span.End)
	}

	if got := c.Symbols("/tmp/kale/missing.kl"); got != nil {
		t.Errorf("Symbols of unknown file = %v, want nil", got)
	}
}

func TestCompletionsAtPoint(t *testing.T) {
	c := New("/tmp/kale", nil)
	c.UpdateFile("/tmp/kale/lib.kl", []byte("extern sin(x)\ndef square(x) x * x\ndef scale(k, v) k * v"))
	c.UpdateFile("/tmp/kale/main.kl", []byte("def sin(y) y\nsq"))

	items := c.CompletionsAtPoint("/tmp/kale/main.kl", 2, 2)
	if len(items) != 1 {
		t.Fatalf("items = %+v, want square only", items)
	}
	if items[0].Label != "square" || items[0].InsertText != "square(${1:x})" || items[0].Kind != CompletionKindFunction {
		t.Errorf("item = %+v", items[0])
	}

	items = c.CompletionsAtPoint("/tmp/kale/main.kl", 2, 0)
	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	if got, want := strings.Join(labels, " "), "def extern scale sin square"; got != want {
		t.Errorf("labels = %q, want %q", got, want)
	}

	items = c.CompletionsAtPoint("/tmp/kale/main.kl", 1, 1)
	if len(items) != 1 || items[0].Label != "def" || items[0].Kind != CompletionKindKeyword {
		t.Errorf("items = %+v, want the def keyword", items)
	}
}

func TestIdentPrefix(t *testing.T) {
	content := []byte("foo(ba\n  λx")
	tests := []struct {
		line, column int
		want         string
	}{
		{1, 0, ""},
		{1, 3, "foo"},
		{1, 6, "ba"},
		{1, 99, "ba"},
		{2, 5, "λx"},
		{3, 0, ""},
	}
	for _, tt := range tests {
		if got := identPrefix(content, tt.line, tt.column); got != tt.want {
			t.Errorf("identPrefix(%d, %d) = %q, want %q", tt.line, tt.column, got, tt.want)
		}
	}
}

func TestCustomSettings(t *testing.T) {
	settings := parser.DefaultSettings()
	settings.Define("/", 40)
	c := New("/tmp/kale", settings)
	c.UpdateFile("/tmp/kale/a.kl", []byte("1 / 2"))
	if f := c.GetFile("/tmp/kale/a.kl"); len(f.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %+v, want none", f.Diagnostics)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.kl"), "extern a()")
	writeFile(t, filepath.Join(dir, "sub", "b.kl"), "def b(x) x")
	writeFile(t, filepath.Join(dir, ".hidden", "c.kl"), "def c(x) x")
	writeFile(t, filepath.Join(dir, "notes.txt"), "def d(x) x")

	c := New(dir, nil)
	if err := c.ScanAll(); err != nil {
		t.Fatalf("ScanAll: %v", err)
	}
	paths := c.Paths()
	want := []string{filepath.Join(dir, "a.kl"), filepath.Join(dir, "sub", "b.kl")}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Errorf("Paths = %v, want %v", paths, want)
	}
}

func TestFileWatcherScan(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.kl")
	b := filepath.Join(dir, "b.kl")
	writeFile(t, a, "extern a()")
	writeFile(t, b, "extern b()")

	c := New(dir, nil)
	w := NewFileWatcher(c)
	var changed []string
	w.OnChange(func(path string) { changed = append(changed, path) })

	w.scan()
	if len(c.Paths()) != 2 || len(changed) != 2 {
		t.Fatalf("after first scan: paths %v, changed %v", c.Paths(), changed)
	}

	changed = nil
	w.scan()
	if len(changed) != 0 {
		t.Errorf("unchanged files reported: %v", changed)
	}

	c.SetOpen(a, true)
	if err := os.Remove(b); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(a); err != nil {
		t.Fatal(err)
	}
	w.scan()
	if c.GetFile(b) != nil {
		t.Error("removed file is still in the codebase")
	}
	if c.GetFile(a) == nil {
		t.Error("file open in the editor was dropped")
	}
	if len(changed) != 1 || changed[0] != b {
		t.Errorf("changed = %v, want [%s]", changed, b)
	}
}

func TestRefreshSkipsOpenFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.kl")
	writeFile(t, path, "extern disk()")

	c := New(dir, nil)
	c.UpdateFile(path, []byte("extern editor()"))
	c.SetOpen(path, true)

	updated, err := c.Refresh(path)
	if err != nil || updated {
		t.Fatalf("Refresh = %v, %v, want skipped", updated, err)
	}
	if got := c.Symbols(path)[0].Name; got != "editor" {
		t.Errorf("symbol = %s, want editor", got)
	}

	c.SetOpen(path, false)
	if _, err := c.Refresh(path); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := c.Symbols(path)[0].Name; got != "disk" {
		t.Errorf("symbol = %s, want disk", got)
	}
}

func TestOpenFileWinsOverDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.kl")
	writeFile(t, path, "extern disk()")

	c := New(dir, nil)
	c.OpenFile(path, []byte("extern editor()"))
	if !c.IsOpen(path) {
		t.Fatal("file not marked open")
	}

	w := NewFileWatcher(c)
	w.scan()
	if got := c.Symbols(path)[0].Name; got != "editor" {
		t.Errorf("symbol = %s after watcher scan, want editor", got)
	}

	c.CloseFile(path)
	if c.IsOpen(path) {
		t.Error("file still open after CloseFile")
	}
	if got := c.Symbols(path)[0].Name; got != "disk" {
		t.Errorf("symbol = %s after close, want disk", got)
	}
}

func TestCloseFileDropsMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unsaved.kl")

	c := New(dir, nil)
	c.OpenFile(path, []byte("def f(x) x"))
	c.CloseFile(path)
	if c.GetFile(path) != nil {
		t.Error("file that only existed in the editor was kept")
	}
}

func TestGetFileReturnsSnapshot(t *testing.T) {
	c := New("/tmp/kale", nil)
	c.UpdateFile("/tmp/kale/a.kl", []byte("1"))
	f := c.GetFile("/tmp/kale/a.kl")
	f.Open = true
	if c.IsOpen("/tmp/kale/a.kl") {
		t.Error("changing the returned FileInfo changed the codebase")
	}
}

// Run with -race: editor handlers and the watcher goroutine touch the
// open flag of the same file.
func TestOpenFlagConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.kl")
	writeFile(t, path, "extern disk()")

	c := New(dir, nil)
	c.OpenFile(path, []byte("extern editor()"))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			c.SetOpen(path, i%2 == 0)
		}
		c.OpenFile(path, []byte("extern editor()"))
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			if _, err := c.Refresh(path); err != nil {
				t.Errorf("Refresh: %v", err)
				return
			}
			_ = c.IsOpen(path)
			if f := c.GetFile(path); f == nil {
				t.Error("file disappeared")
				return
			}
		}
	}()
	wg.Wait()

	if got := c.Symbols(path)[0].Name; got != "editor" {
		t.Errorf("symbol = %s, want editor", got)
	}
}
