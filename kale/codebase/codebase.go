package codebase

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dhamidi/kale/kale/parser"
)

// Ext is the file extension of kale source files.
const Ext = ".kl"

type Codebase struct {
	mu       sync.RWMutex
	rootDir  string
	settings *parser.Settings
	files    map[string]*FileInfo
}

type FileInfo struct {
	Path        string
	Content     []byte
	AST         []parser.Node
	Diagnostics []Diagnostic
	// Open is set while an editor owns the file's contents.
	Open bool
}

type Diagnostic struct {
	Span    parser.Span
	Message string
}

func New(rootDir string, settings *parser.Settings) *Codebase {
	if settings == nil {
		settings = parser.DefaultSettings()
	}
	return &Codebase{
		rootDir:  rootDir,
		settings: settings,
		files:    make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != c.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == Ext {
			if err := c.ScanFile(path); err != nil {
				log.Warningf("scan %s: %s", path, err)
			}
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

// Refresh rereads path from disk unless an editor has it open. The open
// check and the update happen under one lock, so contents an editor sent
// are never replaced by what is on disk.
func (c *Codebase) Refresh(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if f := c.files[path]; f != nil && f.Open {
		return false, nil
	}
	c.updateFileLocked(path, content)
	return true, nil
}

func (c *Codebase) UpdateFile(path string, content []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.updateFileLocked(path, content)
	return nil
}

func (c *Codebase) updateFileLocked(path string, content []byte) {
	ast, diags := analyze(content, filepath.Base(path), c.settings)

	open := false
	if prev := c.files[path]; prev != nil {
		open = prev.Open
	}
	c.files[path] = &FileInfo{
		Path:        path,
		Content:     content,
		AST:         ast,
		Diagnostics: diags,
		Open:        open,
	}
}

// OpenFile stores the contents an editor sent and marks path as owned by
// it.
func (c *Codebase) OpenFile(path string, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateFileLocked(path, content)
	c.files[path].Open = true
}

// CloseFile releases path and reloads it from disk. A file that no longer
// exists is dropped.
func (c *Codebase) CloseFile(path string) {
	content, err := os.ReadFile(path)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		delete(c.files, path)
		return
	}
	c.updateFileLocked(path, content)
	c.files[path].Open = false
}

// SetOpen marks path as owned by an editor, or releases it.
func (c *Codebase) SetOpen(path string, open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f := c.files[path]; f != nil {
		f.Open = open
	}
}

func (c *Codebase) IsOpen(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f := c.files[path]
	return f != nil && f.Open
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

// RemoveUnlessOpen drops path unless an editor owns it and reports whether
// it did.
func (c *Codebase) RemoveUnlessOpen(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.files[path]
	if !ok || f.Open {
		return false
	}
	delete(c.files, path)
	return true
}

// GetFile returns a snapshot of path, or nil when it is unknown.
func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f := c.files[path]
	if f == nil {
		return nil
	}
	snapshot := *f
	return &snapshot
}

// Paths returns the known files in lexical order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// analyze parses a whole file in one call. Input left over at the end is
// reported as an unfinished declaration.
func analyze(content []byte, file string, settings *parser.Settings) ([]parser.Node, []Diagnostic) {
	var tokens []parser.Token
	for tok, err := range parser.NewLexer(content, file).All() {
		if err != nil {
			return nil, []Diagnostic{errorDiagnostic(err)}
		}
		tokens = append(tokens, tok)
	}

	ast, rest, err := parser.Parse(tokens, nil, settings)
	if err != nil {
		return nil, []Diagnostic{errorDiagnostic(err)}
	}
	if len(rest) > 0 {
		return ast, []Diagnostic{{
			Span:    parser.Span{Start: rest[0].Span.Start, End: rest[len(rest)-1].Span.End},
			Message: "unexpected end of input: declaration is not finished",
		}}
	}
	return ast, nil
}

func errorDiagnostic(err error) Diagnostic {
	var lexErr *parser.LexError
	if errors.As(err, &lexErr) {
		end := lexErr.Pos
		end.Column++
		end.Offset++
		return Diagnostic{Span: parser.Span{Start: lexErr.Pos, End: end}, Message: lexErr.Message}
	}
	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) && synErr.Token != nil {
		return Diagnostic{Span: synErr.Token.Span, Message: synErr.Message + ", got " + synErr.Token.String()}
	}
	return Diagnostic{Message: err.Error()}
}

type SymbolKind int

const (
	SymbolFunction SymbolKind = iota
	SymbolExtern
)

type Symbol struct {
	Name   string
	Kind   SymbolKind
	Detail string
	Args   []string
	Span   parser.Span
	Path   string
}

// Symbols lists the named declarations of path in source order.
func (c *Codebase) Symbols(path string) []Symbol {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f := c.files[path]
	if f == nil {
		return nil
	}
	return symbolsOf(f)
}

func symbolsOf(f *FileInfo) []Symbol {
	var symbols []Symbol
	for _, n := range f.AST {
		proto := n.Signature()
		if proto.Name == "" {
			continue
		}
		sym := Symbol{
			Name:   proto.Name,
			Kind:   SymbolFunction,
			Detail: "def " + proto.String(),
			Args:   proto.Args,
			Span:   n.Extent(),
			Path:   f.Path,
		}
		if _, ok := n.(*parser.ExternNode); ok {
			sym.Kind = SymbolExtern
			sym.Detail = "extern " + proto.String()
		}
		symbols = append(symbols, sym)
	}
	return symbols
}

// AllSymbols collects the declarations of every file, first declaration of
// a name winning, sorted by name.
func (c *Codebase) AllSymbols() []Symbol {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var all []Symbol
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		for _, sym := range symbolsOf(c.files[path]) {
			if seen[sym.Name] {
				continue
			}
			seen[sym.Name] = true
			all = append(all, sym)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

type CompletionKind int

const (
	CompletionKindFunction CompletionKind = iota
	CompletionKindKeyword
)

type CompletionItem struct {
	Label      string
	Kind       CompletionKind
	Detail     string
	InsertText string
}

// CompletionsAtPoint offers the keywords and every declared function whose
// name starts with the identifier left of line:column. Line is 1-based,
// column a 0-based byte offset as editors send it.
func (c *Codebase) CompletionsAtPoint(path string, line, column int) []CompletionItem {
	prefix := ""
	if f := c.GetFile(path); f != nil {
		prefix = identPrefix(f.Content, line, column)
	}

	var items []CompletionItem
	for _, kw := range parser.Keywords() {
		if strings.HasPrefix(kw, prefix) {
			items = append(items, CompletionItem{
				Label:      kw,
				Kind:       CompletionKindKeyword,
				InsertText: kw,
			})
		}
	}
	for _, sym := range c.AllSymbols() {
		if !strings.HasPrefix(sym.Name, prefix) {
			continue
		}
		items = append(items, CompletionItem{
			Label:      sym.Name,
			Kind:       CompletionKindFunction,
			Detail:     sym.Detail,
			InsertText: formatCallInsert(sym),
		})
	}
	return items
}

func identPrefix(content []byte, line, column int) string {
	lines := strings.Split(string(content), "\n")
	if line <= 0 || line > len(lines) {
		return ""
	}
	text := lines[line-1]
	if column > len(text) {
		column = len(text)
	}
	start := column
	for start > 0 && isIdentByte(text[start-1]) {
		start--
	}
	return text[start:column]
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b >= 0x80
}

func formatCallInsert(sym Symbol) string {
	if len(sym.Args) == 0 {
		return sym.Name + "()"
	}
	placeholders := make([]string, len(sym.Args))
	for i, arg := range sym.Args {
		placeholders[i] = "${" + strconv.Itoa(i+1) + ":" + arg + "}"
	}
	return sym.Name + "(" + strings.Join(placeholders, ", ") + ")"
}
