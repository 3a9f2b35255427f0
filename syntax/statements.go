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
package syntax

import (
	"strconv"
	"strings"
	"unicode/utf8"

	ts "github.com/tree-sitter/go-tree-sitter"

	"bennypowers.dev/direx/edit"
)

// Statement is a top-level statement with a byte range in its file.
type Statement interface {
	Range() edit.Range
	isStatement()
}

// Name is an identifier or string-literal name as written in source.
// Value is the name itself; Raw is its spelling, quotes included for strings.
type Name struct {
	Value string
	Raw   string
}

// IsZero reports whether n was absent from the source.
func (n Name) IsZero() bool {
	return n.Raw == ""
}

// SpecifierKind classifies an import specifier.
type SpecifierKind int

const (
	// Named is `{ foo }` or `{ foo as bar }`.
	Named SpecifierKind = iota
	// Default is the `foo` in `import foo from "m"`.
	Default
	// Namespace is `* as foo`.
	Namespace
)

func (k SpecifierKind) String() string {
	switch k {
	case Default:
		return "default"
	case Namespace:
		return "namespace"
	default:
		return "named"
	}
}

// ImportSpecifier is one binding introduced by an import statement.
type ImportSpecifier struct {
	Kind SpecifierKind
	// Imported is empty for default and namespace specifiers.
	Imported Name
	Local    Name
	// TypeOnly marks `import { type Foo }`.
	TypeOnly bool
	// Raw is the specifier as written, e.g. `foo as bar` or `* as ns`.
	Raw string
}

// ImportDeclaration is `import ... from "source"`.
type ImportDeclaration struct {
	Span       edit.Range
	Source     Name
	Specifiers []ImportSpecifier
	// TypeOnly marks `import type { ... }`.
	TypeOnly bool
	// Attributes is the attribute clause as written, e.g.
	// `with { type: "json" }`, or empty.
	Attributes string
	HasError   bool
}

func (d *ImportDeclaration) Range() edit.Range { return d.Span }
func (*ImportDeclaration) isStatement()        {}

// ExportSpecifier is one entry of an export clause.
type ExportSpecifier struct {
	Local    Name
	Exported Name
	TypeOnly bool
	Raw      string
}

// ExportNamedDeclaration is an export statement that is neither a default
// export nor an `export *`. It either wraps a declaration, lists specifiers,
// or lists specifiers with a source.
type ExportNamedDeclaration struct {
	Span edit.Range
	// Source is nil unless the statement is `export { ... } from "source"`.
	Source      *Name
	Declaration bool
	Specifiers  []ExportSpecifier
	TypeOnly    bool
	HasError    bool
}

func (d *ExportNamedDeclaration) Range() edit.Range { return d.Span }
func (*ExportNamedDeclaration) isStatement()        {}

func span(node *ts.Node) edit.Range {
	return edit.Range{Start: int(node.StartByte()), End: int(node.EndByte())}
}

// unquote returns the value of a string literal, decoding escape
// sequences. Text that is not a quoted literal is returned as is.
func unquote(raw string) string {
	if len(raw) < 2 || (raw[0] != '"' && raw[0] != '\'') || raw[len(raw)-1] != raw[0] {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, `\`) {
		return body
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 == len(body) {
			b.WriteByte(body[i])
			continue
		}
		i++
		switch c := body[i]; c {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\r':
			// Line continuation, CRLF or CR.
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case '\n':
			// Line continuation.
		case 'x':
			if r, n, ok := hexRune(body[i+1:], 2); ok {
				b.WriteRune(r)
				i += n
			} else {
				b.WriteByte(c)
			}
		case 'u':
			rest := body[i+1:]
			if strings.HasPrefix(rest, "{") {
				if end := strings.IndexByte(rest, '}'); end > 1 {
					if r, _, ok := hexRune(rest[1:end], end-1); ok {
						b.WriteRune(r)
						i += end + 1
						continue
					}
				}
			} else if r, n, ok := hexRune(rest, 4); ok {
				b.WriteRune(r)
				i += n
				continue
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// hexRune parses exactly n hex digits from the start of s.
func hexRune(s string, n int) (rune, int, bool) {
	if n == 0 || len(s) < n {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, 0, false
	}
	return rune(v), n, true
}

// readName reads an identifier or string name. Any other node shape falls
// back to its text so one odd specifier never aborts the file.
func readName(node *ts.Node, content []byte) Name {
	if node == nil {
		return Name{}
	}
	raw := node.Utf8Text(content)
	if node.Kind() == "string" {
		return Name{Value: unquote(raw), Raw: raw}
	}
	return Name{Value: raw, Raw: raw}
}

// hasToken reports whether node has a direct anonymous child spelled token.
func hasToken(node *ts.Node, tokens ...string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.IsNamed() {
			continue
		}
		for _, tok := range tokens {
			if child.Kind() == tok {
				return true
			}
		}
	}
	return false
}

// childOfKind returns the first named child of node with the given kind.
func childOfKind(node *ts.Node, kind string) *ts.Node {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(i); child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

// readImport converts an import_statement node. TypeScript's
// `import x = require("m")` form is not an ES import and yields nil.
func readImport(node *ts.Node, content []byte) *ImportDeclaration {
	if childOfKind(node, "import_require_clause") != nil {
		return nil
	}
	source := node.ChildByFieldName("source")
	if source == nil {
		return nil
	}

	decl := &ImportDeclaration{
		Span:     span(node),
		Source:   readName(source, content),
		TypeOnly: hasToken(node, "type", "typeof"),
		HasError: node.HasError(),
	}
	if attrs := childOfKind(node, "import_attribute"); attrs != nil {
		decl.Attributes = attrs.Utf8Text(content)
	}

	clause := childOfKind(node, "import_clause")
	if clause == nil {
		// Side-effect import: import "m";
		return decl
	}

	for i := uint(0); i < clause.NamedChildCount(); i++ {
		child := clause.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			local := readName(child, content)
			decl.Specifiers = append(decl.Specifiers, ImportSpecifier{
				Kind:  Default,
				Local: local,
				Raw:   local.Raw,
			})
		case "namespace_import":
			decl.Specifiers = append(decl.Specifiers, ImportSpecifier{
				Kind:  Namespace,
				Local: readName(childOfKind(child, "identifier"), content),
				Raw:   child.Utf8Text(content),
			})
		case "named_imports":
			for j := uint(0); j < child.NamedChildCount(); j++ {
				spec := child.NamedChild(j)
				if spec == nil || spec.Kind() != "import_specifier" {
					continue
				}
				imported := readName(spec.ChildByFieldName("name"), content)
				local := imported
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					local = readName(alias, content)
				}
				decl.Specifiers = append(decl.Specifiers, ImportSpecifier{
					Kind:     Named,
					Imported: imported,
					Local:    local,
					TypeOnly: hasToken(spec, "type", "typeof"),
					Raw:      spec.Utf8Text(content),
				})
			}
		}
	}

	return decl
}

// readExport converts an export_statement node. Default exports,
// `export *` forms, `export =` and `export as namespace` yield nil.
func readExport(node *ts.Node, content []byte) *ExportNamedDeclaration {
	if hasToken(node, "default", "*", "=", "namespace") || childOfKind(node, "namespace_export") != nil {
		return nil
	}

	decl := &ExportNamedDeclaration{
		Span:        span(node),
		Declaration: node.ChildByFieldName("declaration") != nil,
		TypeOnly:    hasToken(node, "type"),
		HasError:    node.HasError(),
	}

	if source := node.ChildByFieldName("source"); source != nil {
		name := readName(source, content)
		decl.Source = &name
	}

	clause := childOfKind(node, "export_clause")
	if clause == nil {
		return decl
	}

	for i := uint(0); i < clause.NamedChildCount(); i++ {
		spec := clause.NamedChild(i)
		if spec == nil || spec.Kind() != "export_specifier" {
			continue
		}
		local := readName(spec.ChildByFieldName("name"), content)
		exported := local
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			exported = readName(alias, content)
		}
		decl.Specifiers = append(decl.Specifiers, ExportSpecifier{
			Local:    local,
			Exported: exported,
			TypeOnly: hasToken(spec, "type", "typeof"),
			Raw:      spec.Utf8Text(content),
		})
	}

	return decl
}
