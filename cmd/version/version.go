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

// Package version provides the version command for direx.
package version

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/direx/internal/version"
)

// renderers print build info in each supported format.
var renderers = map[string]func(w io.Writer, info version.Info) error{
	"text": func(w io.Writer, info version.Info) error {
		_, err := fmt.Fprintln(w, info.String())
		return err
	},
	"short": func(w io.Writer, info version.Info) error {
		_, err := fmt.Fprintln(w, info.Version)
		return err
	},
	"json": func(w io.Writer, info version.Info) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	},
}

func formats() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Cmd prints build information.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the direx version, git commit and Go toolchain it was built with.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		render, ok := renderers[format]
		if !ok {
			return fmt.Errorf("invalid format %q: must be one of %s", format, strings.Join(formats(), ", "))
		}
		return render(cmd.OutOrStdout(), version.Get())
	},
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format ("+strings.Join(formats(), ", ")+")")
}
