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
	"strings"

	"bennypowers.dev/direx/edit"
	"bennypowers.dev/direx/syntax"
)

// DefaultIndent is used when the export statement shares its line with
// other code, so no indentation can be read from it.
const DefaultIndent = ""

// quote renders a module source for a generated statement in double
// quotes, keeping the literal as written when its value would need escaping.
func quote(source syntax.Name) string {
	if strings.ContainsFunc(source.Value, func(r rune) bool {
		return r == '"' || r == '\\' || r < ' '
	}) {
		return source.Raw
	}
	return `"` + source.Value + `"`
}

// fromClause is the ` from "source" with { ... };` tail of a statement.
func fromClause(source, attributes string) string {
	if attributes != "" {
		return " from " + source + " " + attributes + ";"
	}
	return " from " + source + ";"
}

// ExportLines renders the direct re-exports for g: default specifiers
// first, one statement each, then namespace specifiers, one each, then all
// named specifiers in a single statement.
func ExportLines(g MatchGroup) []string {
	from := fromClause(quote(g.Source), g.Attributes)

	var defaults, namespaces, named []string
	for _, t := range g.Specifiers {
		switch {
		case t.IsDefault:
			defaults = append(defaults, "export { default as "+t.Exported.Raw+" }"+from)
		case t.isNamespace():
			namespaces = append(namespaces, "export * as "+t.Exported.Raw+from)
		case t.Imported.Value == t.Exported.Value:
			named = append(named, t.Imported.Raw)
		default:
			named = append(named, t.Imported.Raw+" as "+t.Exported.Raw)
		}
	}

	lines := append(defaults, namespaces...)
	if len(named) > 0 {
		lines = append(lines, "export { "+strings.Join(named, ", ")+" }"+from)
	}
	return lines
}

// Fix computes the edits for g. Every group touching a statement asks for
// the same edit to it, so applying several groups' fixes together is safe.
func (r *Resolution) Fix(src *edit.Source, g MatchGroup) []edit.Edit {
	span := g.Export.Range()
	indent, ok := src.Indent(span)
	if !ok {
		indent = DefaultIndent
	}

	edits := []edit.Edit{src.InsertLinesBefore(span, indent, ExportLines(g))}

	if residual := r.residualExports[g.Export]; len(residual) > 0 {
		line := "export { " + strings.Join(residual, ", ") + " };"
		edits = append(edits, src.ReplaceLines(span, indent, []string{line}))
	} else {
		edits = append(edits, src.Remove(span))
	}

	for _, stmt := range g.Imports {
		edits = append(edits, r.importEdit(src, stmt))
	}
	return edits
}

// importEdit removes stmt, or rewrites it to import only what is still used.
func (r *Resolution) importEdit(src *edit.Source, stmt syntax.Statement) edit.Edit {
	span := stmt.Range()
	kept := r.residualImports[stmt]
	if len(kept) == 0 {
		return src.Remove(span)
	}
	indent, ok := src.Indent(span)
	if !ok {
		indent = DefaultIndent
	}
	return src.ReplaceLines(span, indent, []string{importLine(kept)})
}

func importLine(kept []ImportBinding) string {
	var clauses, named []string
	for _, b := range kept {
		if b.IsDefault || b.isNamespace() {
			clauses = append(clauses, b.Raw)
		} else {
			named = append(named, b.Raw)
		}
	}
	if len(named) > 0 {
		clauses = append(clauses, "{ "+strings.Join(named, ", ")+" }")
	}
	return "import " + strings.Join(clauses, ", ") + fromClause(kept[0].Source.Raw, kept[0].Attributes)
}
