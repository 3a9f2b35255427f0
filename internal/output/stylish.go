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
package output

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"bennypowers.dev/direx/lint"
	"bennypowers.dev/direx/rule"
)

var (
	pathColor  = color.New(color.Underline)
	errorColor = color.New(color.FgRed)
	warnColor  = color.New(color.FgYellow)
	ruleColor  = color.New(color.Faint)
)

func severityLabel(s rule.Severity) string {
	if s == rule.Error {
		return errorColor.Sprint("error")
	}
	return warnColor.Sprint("warning")
}

// Stylish prints one block per file that has problems, with paths shown
// relative to root when possible.
func Stylish(w io.Writer, results []lint.FileResult, root string) {
	for _, r := range results {
		if len(r.Diagnostics) == 0 && r.Error == "" {
			continue
		}

		path := r.File
		if rel, err := filepath.Rel(root, r.File); err == nil && root != "" {
			path = rel
		}
		fmt.Fprintln(w, pathColor.Sprint(path))

		tbl := newTable()
		if r.Error != "" {
			tbl.AppendRow(table.Row{"", errorColor.Sprint("error"), r.Error, ""})
		}
		for _, d := range r.Diagnostics {
			tbl.AppendRow(table.Row{
				fmt.Sprintf("%d:%d", d.Line, d.Column),
				severityLabel(d.Severity),
				d.Message,
				ruleColor.Sprint(d.RuleID),
			})
		}
		fmt.Fprintln(w, tbl.Render())
		fmt.Fprintln(w)
	}
}
