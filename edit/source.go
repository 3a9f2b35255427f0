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
package edit

import (
	"bytes"
	"sort"
	"strings"
)

// Position is a 1-indexed line and column in a source buffer.
// Columns count bytes, not runes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Source wraps the original bytes of a file and answers line-oriented
// questions about ranges within it.
type Source struct {
	text       []byte
	lineStarts []int
}

// NewSource indexes the line starts of text.
func NewSource(text []byte) *Source {
	starts := []int{0}
	for i, b := range text {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Source{text: text, lineStarts: starts}
}

// Bytes returns the underlying text. Callers must not modify it.
func (s *Source) Bytes() []byte {
	return s.text
}

// Text returns the text covered by r.
func (s *Source) Text(r Range) string {
	return string(s.text[r.Start:r.End])
}

// Position converts a byte offset into a line and column.
func (s *Source) Position(offset int) Position {
	line := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	return Position{Line: line + 1, Column: offset - s.lineStarts[line] + 1}
}

func (s *Source) lineStart(offset int) int {
	return s.lineStarts[s.Position(offset).Line-1]
}

// lineEnd returns the offset just past the newline ending the line that
// contains offset, or the end of the text on the last line.
func (s *Source) lineEnd(offset int) int {
	line := s.Position(offset).Line
	if line < len(s.lineStarts) {
		return s.lineStarts[line]
	}
	return len(s.text)
}

func isBlank(b []byte) bool {
	return strings.TrimSpace(string(b)) == ""
}

// Indent returns the whitespace between the start of r's first line and r.
// ok is false when anything other than whitespace precedes r on that line.
func (s *Source) Indent(r Range) (indent string, ok bool) {
	prefix := s.text[s.lineStart(r.Start):r.Start]
	if !isBlank(prefix) {
		return "", false
	}
	return string(prefix), true
}

// newline returns the line ending used after r: the one ending r's last
// line, or the file's first one when r is on the unterminated last line.
func (s *Source) newline(r Range) string {
	end := s.lineEnd(r.End)
	if end == len(s.text) && (end == 0 || s.text[end-1] != '\n') {
		i := bytes.IndexByte(s.text, '\n')
		if i < 0 {
			return "\n"
		}
		end = i + 1
	}
	if end >= 2 && s.text[end-2] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// lines is the whole-line extent of a statement that stands alone.
type lines struct {
	full Range
	// comment is a trailing `//` comment sharing the statement's last line.
	comment string
}

// ownLines reports whether r is alone on the lines it spans, apart from
// a trailing line comment, and if so returns those whole lines including
// the final newline.
func (s *Source) ownLines(r Range) (lines, bool) {
	start := s.lineStart(r.Start)
	if !isBlank(s.text[start:r.Start]) {
		return lines{}, false
	}
	end := s.lineEnd(r.End)
	tail := strings.TrimSpace(string(s.text[r.End:end]))
	if tail != "" && !strings.HasPrefix(tail, "//") {
		return lines{}, false
	}
	return lines{full: Range{Start: start, End: end}, comment: tail}, true
}

// InsertLinesBefore inserts lines ahead of r, each prefixed with indent.
// When r stands on its own lines the text goes in at the start of r's line,
// otherwise directly before r.
func (s *Source) InsertLinesBefore(r Range, indent string, text []string) Edit {
	nl := s.newline(r)
	var b strings.Builder
	if own, ok := s.ownLines(r); ok {
		for _, line := range text {
			b.WriteString(indent)
			b.WriteString(line)
			b.WriteString(nl)
		}
		return Edit{Range: Range{Start: own.full.Start, End: own.full.Start}, Text: b.String()}
	}
	for i, line := range text {
		if i > 0 {
			b.WriteString(indent)
		}
		b.WriteString(line)
		b.WriteString(nl)
	}
	return Edit{Range: Range{Start: r.Start, End: r.Start}, Text: b.String()}
}

// ReplaceLines replaces r with text. A statement alone on its lines is
// replaced line-for-line so no blank line is left behind, and a trailing
// line comment moves to the last new line.
func (s *Source) ReplaceLines(r Range, indent string, text []string) Edit {
	nl := s.newline(r)
	var b strings.Builder
	if own, ok := s.ownLines(r); ok {
		for i, line := range text {
			b.WriteString(indent)
			b.WriteString(line)
			if i == len(text)-1 && own.comment != "" {
				b.WriteString(" ")
				b.WriteString(own.comment)
			}
			b.WriteString(nl)
		}
		return Edit{Range: own.full, Text: b.String()}
	}
	b.WriteString(strings.Join(text, nl+indent))
	return Edit{Range: r, Text: b.String()}
}

// Remove deletes r, along with its lines when nothing else shares them.
// A trailing line comment goes with the statement.
func (s *Source) Remove(r Range) Edit {
	return s.ReplaceLines(r, "", nil)
}
