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

// Package rules provides the rules command for direx.
package rules

import (
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/direx/config"
	"bennypowers.dev/direx/internal/output"
	"bennypowers.dev/direx/preset"
	"bennypowers.dev/direx/rule"
)

// Cmd lists the built-in rules with the severity the current config gives them.
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "List available rules",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromViper()
	if err != nil {
		return err
	}
	configured, err := cfg.Resolve(preset.Rules())
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	enabled := make(map[string]rule.Severity, len(configured))
	for _, c := range configured {
		enabled[c.Rule.Meta().Name] = c.Severity
	}

	reg := preset.Rules()
	var rows []output.RuleRow
	for _, name := range reg.Names() {
		r, _ := reg.Get(name)
		rows = append(rows, output.RuleRow{Meta: r.Meta(), Severity: enabled[name]})
	}
	fmt.Fprintln(cmd.OutOrStdout(), output.RulesTable(rows))
	return nil
}
