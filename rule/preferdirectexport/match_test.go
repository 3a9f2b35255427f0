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
package preferdirectexport

import (
	"reflect"
	"testing"

	"bennypowers.dev/direx/edit"
	"bennypowers.dev/direx/syntax"
)

func rng(start, end int) edit.Range {
	return edit.Range{Start: start, End: end}
}

func ident(s string) syntax.Name {
	return syntax.Name{Value: s, Raw: s}
}

func str(s string) syntax.Name {
	return syntax.Name{Value: s, Raw: `"` + s + `"`}
}

func TestMatch_GroupsByStatementThenSource(t *testing.T) {
	impA := &syntax.ImportDeclaration{Span: rng(0, 10), Source: str("a")}
	impB := &syntax.ImportDeclaration{Span: rng(10, 20), Source: str("b")}
	exp1 := &syntax.ExportNamedDeclaration{Span: rng(20, 30)}
	exp2 := &syntax.ExportNamedDeclaration{Span: rng(30, 40)}

	imports := []ImportBinding{
		{Source: str("a"), Imported: ident("x"), Local: ident("x"), Statement: impA},
		{Source: str("b"), Imported: defaultName, Local: ident("Y"), Statement: impB, IsDefault: true},
		{Source: str("a"), Imported: ident("z"), Local: ident("z"), Statement: impA},
	}
	exports := []ExportBinding{
		{Exported: ident("Y"), Local: ident("Y"), Statement: exp1},
		{Exported: ident("x"), Local: ident("x"), Statement: exp1},
		{Exported: ident("w"), Local: ident("w"), Statement: exp2, Raw: "w"},
		{Exported: ident("zz"), Local: ident("z"), Statement: exp2},
	}

	res := Match(imports, exports)

	if len(res.Groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(res.Groups))
	}
	expected := []struct {
		export syntax.Statement
		source string
	}{
		{exp1, "b"},
		{exp1, "a"},
		{exp2, "a"},
	}
	for i, e := range expected {
		g := res.Groups[i]
		if g.Export != e.export || g.Source.Value != e.source {
			t.Errorf("Group %d: expected %s from export at %v, got %s from %v", i, e.source, e.export.Range(), g.Source.Value, g.Export.Range())
		}
	}

	if !res.Groups[0].Specifiers[0].IsDefault {
		t.Errorf("Expected default triple for Y")
	}
	if got := res.Groups[2].Specifiers; len(got) != 1 || got[0].Imported.Value != "z" || got[0].Exported.Value != "zz" {
		t.Errorf("Unexpected triples %+v", got)
	}
	if !reflect.DeepEqual(res.residualExports[exp2], []string{"w"}) {
		t.Errorf("Expected w to stay behind, got %v", res.residualExports[exp2])
	}
	if len(res.residualImports) != 0 {
		t.Errorf("Expected every import to be consumed, got %v", res.residualImports)
	}
}

func TestMatch_TypeOnly(t *testing.T) {
	imp := &syntax.ImportDeclaration{Source: str("m")}
	exp := &syntax.ExportNamedDeclaration{}

	imports := []ImportBinding{
		{Source: str("m"), Imported: ident("T"), Local: ident("T"), Statement: imp, TypeOnly: true, Raw: "type T"},
		{Source: str("m"), Imported: ident("v"), Local: ident("v"), Statement: imp, Raw: "v"},
	}
	exports := []ExportBinding{
		{Exported: ident("T"), Local: ident("T"), Statement: exp, Raw: "T"},
		{Exported: ident("v"), Local: ident("v"), Statement: exp, TypeOnly: true, Raw: "type v"},
	}

	res := Match(imports, exports)
	if len(res.Groups) != 0 {
		t.Errorf("Type-only specifiers must never match, got %+v", res.Groups)
	}
	if len(res.residualImports[imp]) != 2 {
		t.Errorf("Expected both imports kept, got %v", res.residualImports[imp])
	}
}

func TestExportLines(t *testing.T) {
	g := MatchGroup{
		Source: syntax.Name{Value: `we"ird`, Raw: `'we"ird'`},
		Specifiers: []Triple{
			{Imported: ident("a"), Exported: ident("a")},
			{Imported: namespaceName, Exported: ident("ns")},
			{Imported: defaultName, Exported: ident("D"), IsDefault: true},
			{Imported: str("b c"), Exported: ident("bc")},
			{Imported: defaultName, Exported: ident("E"), IsDefault: true},
		},
	}

	expected := []string{
		`export { default as D } from 'we"ird';`,
		`export { default as E } from 'we"ird';`,
		`export * as ns from 'we"ird';`,
		`export { a, "b c" as bc } from 'we"ird';`,
	}
	if got := ExportLines(g); !reflect.DeepEqual(got, expected) {
		t.Errorf("Unexpected lines\nExpected: %q\nGot:      %q", expected, got)
	}
}

func TestExportLines_Attributes(t *testing.T) {
	g := MatchGroup{
		Source:     str("./d.json"),
		Attributes: `with { type: "json" }`,
		Specifiers: []Triple{{Imported: defaultName, Exported: ident("data"), IsDefault: true}},
	}
	expected := []string{`export { default as data } from "./d.json" with { type: "json" };`}
	if got := ExportLines(g); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestMatch_AttributesSplitGroups(t *testing.T) {
	withAttrs := &syntax.ImportDeclaration{Span: rng(0, 10), Source: str("./s.css")}
	plain := &syntax.ImportDeclaration{Span: rng(11, 20), Source: str("./s.css")}
	exp := &syntax.ExportNamedDeclaration{Span: rng(21, 30)}

	imports := []ImportBinding{
		{Source: str("./s.css"), Imported: namespaceName, Local: ident("raw"), Statement: withAttrs, Attributes: `with { type: "css" }`},
		{Source: str("./s.css"), Imported: ident("sheet"), Local: ident("sheet"), Statement: plain},
	}
	exports := []ExportBinding{
		{Exported: ident("raw"), Local: ident("raw"), Statement: exp},
		{Exported: ident("sheet"), Local: ident("sheet"), Statement: exp},
	}

	res := Match(imports, exports)
	if len(res.Groups) != 2 {
		t.Fatalf("Expected one group per attribute set, got %d", len(res.Groups))
	}
	if res.Groups[0].Attributes != `with { type: "css" }` || res.Groups[1].Attributes != "" {
		t.Errorf("Unexpected group attributes %q, %q", res.Groups[0].Attributes, res.Groups[1].Attributes)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		source   syntax.Name
		expected string
	}{
		{str("module-a"), `"module-a"`},
		{syntax.Name{Value: "react", Raw: "'react'"}, `"react"`},
		{syntax.Name{Value: `we"ird`, Raw: `'we"ird'`}, `'we"ird'`},
		{syntax.Name{Value: `back\slash`, Raw: `'back\\slash'`}, `'back\\slash'`},
		{syntax.Name{Value: "tab\there", Raw: `'tab\there'`}, `'tab\there'`},
	}
	for _, tt := range tests {
		if got := quote(tt.source); got != tt.expected {
			t.Errorf("quote(%+v): expected %s, got %s", tt.source, tt.expected, got)
		}
	}
}

func TestImportLine(t *testing.T) {
	src := syntax.Name{Value: "m", Raw: "'m'"}
	tests := []struct {
		kept     []ImportBinding
		expected string
	}{
		{
			kept:     []ImportBinding{{Source: src, IsDefault: true, Imported: defaultName, Raw: "D"}},
			expected: "import D from 'm';",
		},
		{
			kept: []ImportBinding{
				{Source: src, IsDefault: true, Imported: defaultName, Raw: "D"},
				{Source: src, Imported: namespaceName, Raw: "* as ns"},
			},
			expected: "import D, * as ns from 'm';",
		},
		{
			kept: []ImportBinding{
				{Source: src, Imported: ident("a"), Raw: "a"},
				{Source: src, Imported: ident("b"), Raw: "b as c", TypeOnly: true},
			},
			expected: "import { a, b as c } from 'm';",
		},
		{
			kept:     []ImportBinding{{Source: src, Imported: ident("a"), Raw: "a", Attributes: "with { type: 'json' }"}},
			expected: "import { a } from 'm' with { type: 'json' };",
		},
	}
	for _, tt := range tests {
		if got := importLine(tt.kept); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}
