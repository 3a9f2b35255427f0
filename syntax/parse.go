/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package syntax parses JavaScript and TypeScript modules with tree-sitter
// and exposes their top-level import and export statements.
package syntax

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
	tsTypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"bennypowers.dev/direx/edit"
)

// Dialect selects the grammar used to parse a file.
type Dialect int

const (
	// TypeScript parses .js, .mjs, .cjs, .ts, .mts and .cts files.
	TypeScript Dialect = iota
	// TSX parses files that may contain JSX.
	TSX
)

func (d Dialect) String() string {
	if d == TSX {
		return "tsx"
	}
	return "typescript"
}

// DialectFor picks a grammar from the file extension.
func DialectFor(filename string) Dialect {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jsx", ".tsx":
		return TSX
	default:
		return TypeScript
	}
}

// languages holds pre-initialized tree-sitter grammars.
var languages = struct {
	typescript *ts.Language
	tsx        *ts.Language
}{
	ts.NewLanguage(tsTypescript.LanguageTypescript()),
	ts.NewLanguage(tsTypescript.LanguageTSX()),
}

func newPool(lang *ts.Language, name string) *sync.Pool {
	return &sync.Pool{
		New: func() any {
			parser := ts.NewParser()
			if err := parser.SetLanguage(lang); err != nil {
				panic("failed to set " + name + " language: " + err.Error())
			}
			return parser
		},
	}
}

// Parser pools for reuse across files and goroutines.
var (
	tsParserPool  = newPool(languages.typescript, "TypeScript")
	tsxParserPool = newPool(languages.tsx, "TSX")
)

func poolFor(d Dialect) *sync.Pool {
	if d == TSX {
		return tsxParserPool
	}
	return tsParserPool
}

// getParser retrieves a parser for the dialect from its pool.
func getParser(d Dialect) *ts.Parser {
	return poolFor(d).Get().(*ts.Parser)
}

// putParser returns a parser to its pool.
func putParser(d Dialect, p *ts.Parser) {
	p.Reset()
	poolFor(d).Put(p)
}

// File is a parsed module. Statements are in source order and hold no
// references into the tree-sitter tree, which is released after parsing.
type File struct {
	Name       string
	Dialect    Dialect
	Source     *edit.Source
	Statements []Statement
	// HasErrors is true when tree-sitter had to recover from syntax errors.
	HasErrors bool
}

// Parse parses content as a module. The filename picks the dialect and is
// carried on the result for rules that look at it.
func Parse(filename string, content []byte) (*File, error) {
	dialect := DialectFor(filename)

	parser := getParser(dialect)
	defer putParser(dialect, parser)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s", filename)
	}
	defer tree.Close()

	root := tree.RootNode()
	file := &File{
		Name:      filename,
		Dialect:   dialect,
		Source:    edit.NewSource(content),
		HasErrors: root.HasError(),
	}

	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "import_statement":
			if stmt := readImport(child, content); stmt != nil {
				file.Statements = append(file.Statements, stmt)
			}
		case "export_statement":
			if stmt := readExport(child, content); stmt != nil {
				file.Statements = append(file.Statements, stmt)
			}
		}
	}

	return file, nil
}
