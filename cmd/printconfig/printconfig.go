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

// Package printconfig provides the print-config command for direx.
package printconfig

import (
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/direx/config"
	"bennypowers.dev/direx/fs"
	"bennypowers.dev/direx/internal/output"
	"bennypowers.dev/direx/preset"
)

// Cmd prints the effective configuration after presets and overrides.
var Cmd = &cobra.Command{
	Use:   "print-config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromViper()
		if err != nil {
			return err
		}
		configured, err := cfg.Resolve(preset.Rules())
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		out, err := config.Render(cfg.Path, configured)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		return output.Emit(fs.NewOSFileSystem(), cmd.OutOrStdout(), out)
	},
}
