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
	"github.com/jedib0t/go-pretty/v6/table"

	"bennypowers.dev/direx/rule"
)

// RuleRow is one line of the rules listing.
type RuleRow struct {
	Meta     rule.Meta
	Severity rule.Severity
}

// RulesTable renders the rules listing.
func RulesTable(rows []RuleRow) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"RULE", "SEVERITY", "FIXABLE", "DESCRIPTION"})
	for _, r := range rows {
		fixable := ""
		if r.Meta.Fixable {
			fixable = "yes"
		}
		tbl.AppendRow(table.Row{r.Meta.Name, r.Severity.String(), fixable, r.Meta.Description})
	}
	return tbl.Render()
}
