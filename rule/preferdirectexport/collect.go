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

import "bennypowers.dev/direx/syntax"

var (
	defaultName   = syntax.Name{Value: "default", Raw: "default"}
	namespaceName = syntax.Name{Value: "*", Raw: "*"}
)

// ImportBinding is one local binding introduced by an import statement.
type ImportBinding struct {
	Source syntax.Name
	// Imported is "default" for default specifiers and "*" for namespace
	// specifiers.
	Imported  syntax.Name
	Local     syntax.Name
	Statement syntax.Statement
	IsDefault bool
	TypeOnly  bool
	// Raw is the specifier as written.
	Raw string
	// Attributes is the import's attribute clause, e.g. `with { type: "json" }`.
	Attributes string
}

func (b ImportBinding) isNamespace() bool {
	return !b.IsDefault && b.Imported == namespaceName
}

// ExportBinding is one specifier of a plain `export { ... }` statement.
type ExportBinding struct {
	Exported  syntax.Name
	Local     syntax.Name
	Statement syntax.Statement
	TypeOnly  bool
	Raw       string
}

// collectImports returns one binding per specifier of decl. Ignored
// sources, `import type` statements, side-effect imports and statements
// tree-sitter could not parse cleanly yield nothing.
func collectImports(decl *syntax.ImportDeclaration, opts Options) []ImportBinding {
	if decl.TypeOnly || decl.HasError || opts.ignores(decl.Source.Value) {
		return nil
	}

	bindings := make([]ImportBinding, 0, len(decl.Specifiers))
	for _, spec := range decl.Specifiers {
		b := ImportBinding{
			Source:     decl.Source,
			Local:      spec.Local,
			Statement:  decl,
			TypeOnly:   spec.TypeOnly,
			Raw:        spec.Raw,
			Attributes: decl.Attributes,
		}
		switch spec.Kind {
		case syntax.Default:
			b.Imported = defaultName
			b.IsDefault = true
		case syntax.Namespace:
			b.Imported = namespaceName
		default:
			b.Imported = spec.Imported
		}
		bindings = append(bindings, b)
	}
	return bindings
}

// collectExports returns one binding per specifier of a plain export
// statement. Exports with their own source or with a declaration are
// already direct and yield nothing, as do `export type { ... }` statements.
func collectExports(decl *syntax.ExportNamedDeclaration) []ExportBinding {
	if decl.Source != nil || decl.Declaration || decl.TypeOnly || decl.HasError {
		return nil
	}

	bindings := make([]ExportBinding, 0, len(decl.Specifiers))
	for _, spec := range decl.Specifiers {
		bindings = append(bindings, ExportBinding{
			Exported:  spec.Exported,
			Local:     spec.Local,
			Statement: decl,
			TypeOnly:  spec.TypeOnly,
			Raw:       spec.Raw,
		})
	}
	return bindings
}
