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

// Visitor receives top-level statements in file order, then ProgramExit
// exactly once after the last statement.
type Visitor interface {
	ImportDeclaration(*ImportDeclaration)
	ExportNamedDeclaration(*ExportNamedDeclaration)
	ProgramExit()
}

// NopVisitor ignores everything. Rules that opt out of a file return it.
type NopVisitor struct{}

func (NopVisitor) ImportDeclaration(*ImportDeclaration)           {}
func (NopVisitor) ExportNamedDeclaration(*ExportNamedDeclaration) {}
func (NopVisitor) ProgramExit()                                   {}

// Visitors fans every callback out to each visitor in order.
type Visitors []Visitor

func (vs Visitors) ImportDeclaration(d *ImportDeclaration) {
	for _, v := range vs {
		v.ImportDeclaration(d)
	}
}

func (vs Visitors) ExportNamedDeclaration(d *ExportNamedDeclaration) {
	for _, v := range vs {
		v.ExportNamedDeclaration(d)
	}
}

func (vs Visitors) ProgramExit() {
	for _, v := range vs {
		v.ProgramExit()
	}
}

// Walk makes a single forward pass over f.
func Walk(f *File, v Visitor) {
	for _, stmt := range f.Statements {
		switch s := stmt.(type) {
		case *ImportDeclaration:
			v.ImportDeclaration(s)
		case *ExportNamedDeclaration:
			v.ExportNamedDeclaration(s)
		}
	}
	v.ProgramExit()
}
