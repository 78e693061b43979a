// Package parser provides Python source parsing via Tree-sitter.
//
// Tree-sitter parsers require CGO_ENABLED=1. Every Tree returned must be
// explicitly closed to avoid memory leaks.
package parser

import (
	"fmt"
	"os"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

// ParsedFile holds a parsed Tree-sitter syntax tree with its source content.
// Caller must call Close() when done, or use CloseAll.
type ParsedFile struct {
	Path    string
	RelPath types.FilePath
	Tree    *tree_sitter.Tree
	Content []byte
}

// Close releases the underlying tree-sitter tree.
func (pf *ParsedFile) Close() {
	if pf != nil && pf.Tree != nil {
		pf.Tree.Close()
	}
}

// TreeSitterParser holds a pooled Python Tree-sitter parser. Tree-sitter
// parsers are NOT thread-safe, so all parse operations are serialized via a
// mutex; trees returned from parsing are safe to use concurrently afterward.
type TreeSitterParser struct {
	mu     sync.Mutex
	parser *tree_sitter.Parser
}

// NewTreeSitterParser creates a pooled Python parser.
func NewTreeSitterParser() (*TreeSitterParser, error) {
	p := tree_sitter.NewParser()
	lang := tree_sitter.NewLanguage(tree_sitter_python.Language())
	if err := p.SetLanguage(lang); err != nil {
		p.Close()
		return nil, fmt.Errorf("set python language: %w", err)
	}
	return &TreeSitterParser{parser: p}, nil
}

// Close releases the parser resource. Must be called when done.
func (p *TreeSitterParser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// Parse parses Python source content into a Tree. Returns a Tree that the
// caller must close. Thread-safe; parsing is serialized internally.
func (p *TreeSitterParser) Parse(content []byte) (*tree_sitter.Tree, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tree := p.parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter parse returned nil")
	}
	return tree, nil
}

// ParseFiles parses every source/test file in files, reading content from
// disk. Caller must close all returned files (use CloseAll). A read failure
// becomes an IoError diagnostic and a parse failure becomes a ParseError
// diagnostic; either way the file is skipped and the remaining files still
// run, matching the engine's tolerant per-file error model.
func (p *TreeSitterParser) ParseFiles(files []types.DiscoveredFile) ([]*ParsedFile, []types.Diagnostic) {
	var results []*ParsedFile
	var diags []types.Diagnostic

	for _, f := range files {
		if f.Class != types.ClassSource && f.Class != types.ClassTest {
			continue
		}

		content, err := os.ReadFile(f.Path)
		if err != nil {
			ioErr := &types.IoError{Path: f.Path, Err: err}
			diags = append(diags, types.Diagnostic{Kind: types.DiagIO, File: types.FilePath(f.RelPath), Message: ioErr.Error()})
			continue
		}

		tree, err := p.Parse(content)
		if err != nil {
			parseErr := &types.ParseError{Path: f.Path, Message: err.Error()}
			diags = append(diags, types.Diagnostic{Kind: types.DiagParse, File: types.FilePath(f.RelPath), Message: parseErr.Error()})
			continue
		}

		results = append(results, &ParsedFile{
			Path:    f.Path,
			RelPath: types.FilePath(f.RelPath),
			Tree:    tree,
			Content: content,
		})
	}

	return results, diags
}

// CloseAll closes every tree in a slice of ParsedFile. Safe to call with a
// nil or empty slice.
func CloseAll(files []*ParsedFile) {
	for _, f := range files {
		f.Close()
	}
}
