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
	"slices"

	"bennypowers.dev/direx/syntax"
)

// Triple is one export specifier resolved to the import that feeds it.
type Triple struct {
	Imported  syntax.Name
	Exported  syntax.Name
	IsDefault bool
}

func (t Triple) isNamespace() bool {
	return !t.IsDefault && t.Imported == namespaceName
}

// MatchGroup is everything one export statement re-exports from one source
// with one set of import attributes.
type MatchGroup struct {
	Export syntax.Statement
	Source syntax.Name
	// Attributes is carried onto the generated re-exports.
	Attributes string
	Specifiers []Triple
	// Imports are the distinct import statements the specifiers came from.
	Imports []syntax.Statement
}

// Resolution is the matcher's output for a whole file.
type Resolution struct {
	Groups []MatchGroup
	// residualExports holds, per export statement, the raw specifiers that
	// stay behind because they did not resolve to an import.
	residualExports map[syntax.Statement][]string
	// residualImports holds, per import statement, the bindings no export
	// consumed.
	residualImports map[syntax.Statement][]ImportBinding
}

// bucket keys groups within one export statement. The same module imported
// with different attributes is a different module.
type bucket struct {
	source     string
	attributes string
}

// Match joins exports to imports by local name. Exports are grouped by
// statement in first-seen order, then by import source and attributes in
// discovery order.
// When a local name is imported more than once the last import wins.
func Match(imports []ImportBinding, exports []ExportBinding) *Resolution {
	byLocal := make(map[string]int, len(imports))
	for i, imp := range imports {
		if imp.TypeOnly {
			continue
		}
		byLocal[imp.Local.Value] = i
	}

	var order []syntax.Statement
	byStatement := make(map[syntax.Statement][]ExportBinding)
	for _, exp := range exports {
		if _, seen := byStatement[exp.Statement]; !seen {
			order = append(order, exp.Statement)
		}
		byStatement[exp.Statement] = append(byStatement[exp.Statement], exp)
	}

	res := &Resolution{
		residualExports: make(map[syntax.Statement][]string),
		residualImports: make(map[syntax.Statement][]ImportBinding),
	}
	consumed := make(map[int]bool)
	needed := make(map[string]bool)

	for _, stmt := range order {
		var groups []MatchGroup
		bySource := make(map[bucket]int)

		for _, exp := range byStatement[stmt] {
			i, ok := byLocal[exp.Local.Value]
			if !ok || exp.TypeOnly {
				res.residualExports[stmt] = append(res.residualExports[stmt], exp.Raw)
				needed[exp.Local.Value] = true
				continue
			}
			imp := imports[i]
			consumed[i] = true

			key := bucket{source: imp.Source.Value, attributes: imp.Attributes}
			g, ok := bySource[key]
			if !ok {
				g = len(groups)
				bySource[key] = g
				groups = append(groups, MatchGroup{Export: stmt, Source: imp.Source, Attributes: imp.Attributes})
			}
			groups[g].Specifiers = append(groups[g].Specifiers, Triple{
				Imported:  imp.Imported,
				Exported:  exp.Exported,
				IsDefault: imp.IsDefault,
			})
			if !slices.Contains(groups[g].Imports, imp.Statement) {
				groups[g].Imports = append(groups[g].Imports, imp.Statement)
			}
		}

		res.Groups = append(res.Groups, groups...)
	}

	for i, imp := range imports {
		if !consumed[i] || needed[imp.Local.Value] {
			res.residualImports[imp.Statement] = append(res.residualImports[imp.Statement], imp)
		}
	}

	return res
}
