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
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is how many unchanged lines are shown around a change.
const diffContext = 3

var (
	addColor  = color.New(color.FgGreen)
	delColor  = color.New(color.FgRed)
	headColor = color.New(color.Bold)
	skipColor = color.New(color.FgCyan)
)

// splitLines splits text into lines without their newlines.
func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\n")
	}
	return lines
}

// Diff prints a line diff between before and after. Runs of unchanged
// lines are cut down to diffContext lines on each side of a change.
func Diff(w io.Writer, path string, before, after []byte) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	headColor.Fprintf(w, "--- %s\n+++ %s\n", path, path)
	for i, d := range diffs {
		text := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, line := range text {
				delColor.Fprintf(w, "-%s\n", line)
			}
		case diffmatchpatch.DiffInsert:
			for _, line := range text {
				addColor.Fprintf(w, "+%s\n", line)
			}
		case diffmatchpatch.DiffEqual:
			writeContext(w, text, i > 0, i < len(diffs)-1)
		}
	}
}

// writeContext prints the unchanged lines that border a change: the head
// when a change precedes them, the tail when one follows.
func writeContext(w io.Writer, text []string, afterChange, beforeChange bool) {
	var head, tail []string
	if afterChange {
		head = text[:min(diffContext, len(text))]
		text = text[len(head):]
	}
	if beforeChange {
		tail = text[max(0, len(text)-diffContext):]
		text = text[:len(text)-len(tail)]
	}

	for _, line := range head {
		fmt.Fprintf(w, " %s\n", line)
	}
	if len(text) > 0 {
		skipColor.Fprintf(w, "@@ %d unchanged lines @@\n", len(text))
	}
	for _, line := range tail {
		fmt.Fprintf(w, " %s\n", line)
	}
}
