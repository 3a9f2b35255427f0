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

// Package preferdirectexport implements the prefer-direct-export rule,
// which rewrites
//
//	import { foo } from "module-a";
//	export { foo };
//
// into
//
//	export { foo } from "module-a";
//
// Bindings are collected while the file is walked and matched once the
// walk is over, since an export may name an import declared after it.
package preferdirectexport

import (
	"bennypowers.dev/direx/edit"
	"bennypowers.dev/direx/rule"
	"bennypowers.dev/direx/syntax"
)

const (
	// Name is the rule's ID.
	Name = "prefer-direct-export"
	// MessageID identifies the rule's only diagnostic.
	MessageID = "preferDirectExport"
)

// Rule is the prefer-direct-export rule.
type Rule struct{}

// New creates the rule.
func New() *Rule {
	return &Rule{}
}

func (*Rule) Meta() rule.Meta {
	return rule.Meta{
		Name:        Name,
		Description: "Prefer direct re-exports over import-then-export",
		Type:        "suggestion",
		Fixable:     true,
		Messages: map[string]string{
			MessageID: "Prefer direct re-export for imports from '{{source}}' instead of separate import and export statements",
		},
		Schema: Schema,
	}
}

func (r *Rule) Create(ctx *rule.Context) syntax.Visitor {
	opts := DefaultOptions()
	if err := ctx.DecodeOptions(&opts); err != nil {
		ctx.Logger.Error("Invalid rule options", "rule", Name, "file", ctx.Filename, "error", err)
		return syntax.NopVisitor{}
	}
	return &driver{ctx: ctx, opts: opts}
}

type state int

const (
	idle state = iota
	collecting
	resolving
	done
)

func (s state) String() string {
	switch s {
	case collecting:
		return "collecting"
	case resolving:
		return "resolving"
	case done:
		return "done"
	default:
		return "idle"
	}
}

// driver holds one file's bindings.
type driver struct {
	ctx     *rule.Context
	opts    Options
	state   state
	imports []ImportBinding
	exports []ExportBinding
}

// enter runs the file filter on the first callback and reports whether
// the driver is still collecting.
func (d *driver) enter() bool {
	if d.state == idle {
		if !d.opts.Applies(d.ctx.Filename) {
			d.state = done
			return false
		}
		d.state = collecting
	}
	return d.state == collecting
}

// guard turns a panic in a callback into a log line and stops the driver
// for the rest of the file.
func (d *driver) guard(callback string) {
	if p := recover(); p != nil {
		d.ctx.Logger.Error("Rule failed",
			"rule", Name,
			"file", d.ctx.Filename,
			"callback", callback,
			"state", d.state.String(),
			"panic", p)
		d.state = done
	}
}

func (d *driver) ImportDeclaration(decl *syntax.ImportDeclaration) {
	defer d.guard("ImportDeclaration")
	if !d.enter() {
		return
	}
	d.imports = append(d.imports, collectImports(decl, d.opts)...)
}

func (d *driver) ExportNamedDeclaration(decl *syntax.ExportNamedDeclaration) {
	defer d.guard("ExportNamedDeclaration")
	if !d.enter() {
		return
	}
	d.exports = append(d.exports, collectExports(decl)...)
}

func (d *driver) ProgramExit() {
	defer d.guard("ProgramExit")
	if !d.enter() {
		return
	}
	d.state = resolving

	res := Match(d.imports, d.exports)
	for _, g := range res.Groups {
		d.ctx.Report(rule.Report{
			Range:     g.Export.Range(),
			MessageID: MessageID,
			Data:      map[string]string{"source": g.Source.Value},
			Fix: func(src *edit.Source) []edit.Edit {
				return res.Fix(src, g)
			},
		})
	}

	d.state = done
}
