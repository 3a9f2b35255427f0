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
// Package output provides shared output utilities for direx CLI commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/viper"

	"bennypowers.dev/direx/fs"
	"bennypowers.dev/direx/lint"
)

// Emit writes content to the file named by viper's "output" flag, or to w
// when it is unset.
func Emit(osfs fs.FileSystem, w io.Writer, content []byte) error {
	if outputPath := viper.GetString("output"); outputPath != "" {
		return osfs.WriteFile(outputPath, content, 0644)
	}
	_, err := w.Write(content)
	return err
}

// JSON encodes results as an indented JSON array.
func JSON(results []lint.FileResult) ([]byte, error) {
	if results == nil {
		results = []lint.FileResult{}
	}
	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error marshaling results: %w", err)
	}
	return append(out, '\n'), nil
}

// count renders n with thousands separators and the right form of noun.
func count(n int, noun string) string {
	return humanize.Comma(int64(n)) + " " + english.PluralWord(n, noun, "")
}

// Summary prints the closing line of a lint run.
func Summary(w io.Writer, stats lint.Stats, dryRun bool) {
	if stats.Fixed > 0 {
		verb := "Fixed"
		if dryRun {
			verb = "Would fix"
		}
		fmt.Fprintf(w, "%s %s\n", verb, count(stats.Fixed, "file"))
	}
	if stats.Failed > 0 {
		color.New(color.FgRed).Fprintf(w, "%s could not be linted\n", count(stats.Failed, "file"))
	}

	problems := stats.Errors + stats.Warnings
	if problems == 0 {
		return
	}
	c := color.New(color.FgYellow, color.Bold)
	if stats.Errors > 0 {
		c = color.New(color.FgRed, color.Bold)
	}
	c.Fprintf(w, "✖ %s (%s, %s)\n",
		count(problems, "problem"),
		count(stats.Errors, "error"),
		count(stats.Warnings, "warning"))
}

// newTable returns a borderless table in the style of the lint report.
func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false
	return tbl
}
