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

// Package edit provides byte-range text edits over a source buffer.
// Edits are computed against the original text and applied together,
// so callers never have to track shifting offsets.
package edit

import (
	"errors"
	"fmt"
	"slices"
)

// ErrOverlap is returned when two distinct edits touch the same bytes.
var ErrOverlap = errors.New("overlapping edits")

// Range is a half-open byte range [Start, End) into a source buffer.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by r.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether offset lies strictly inside r.
// The boundaries are excluded so that insertions at either end never conflict.
func (r Range) Contains(offset int) bool {
	return offset > r.Start && offset < r.End
}

// Edit replaces the bytes in Range with Text.
// An empty range is an insertion; an empty Text is a removal.
type Edit struct {
	Range Range  `json:"range"`
	Text  string `json:"text"`
}

// IsInsert reports whether e inserts text without removing any.
func (e Edit) IsInsert() bool {
	return e.Range.Len() == 0
}

func (e Edit) String() string {
	if e.IsInsert() {
		return fmt.Sprintf("insert %q at %d", e.Text, e.Range.Start)
	}
	return fmt.Sprintf("replace [%d,%d) with %q", e.Range.Start, e.Range.End, e.Text)
}

// conflicts reports whether a and b cannot both be applied.
// Identical edits never conflict; they are collapsed by Normalize.
func conflicts(a, b Edit) bool {
	if a == b {
		return false
	}
	switch {
	case a.IsInsert() && b.IsInsert():
		return false
	case a.IsInsert():
		return b.Range.Contains(a.Range.Start)
	case b.IsInsert():
		return a.Range.Contains(b.Range.Start)
	}
	return a.Range.Start < b.Range.End && b.Range.Start < a.Range.End
}

// Conflicts reports whether any edit in next conflicts with any edit in accepted.
func Conflicts(accepted, next []Edit) bool {
	for _, n := range next {
		for _, a := range accepted {
			if conflicts(a, n) {
				return true
			}
		}
	}
	return false
}

// Normalize returns the edits in application order with exact duplicates removed.
// Edits are ordered by start offset; at the same offset insertions come before
// replacements, and otherwise the original order is kept.
func Normalize(edits []Edit) []Edit {
	out := make([]Edit, 0, len(edits))
	for _, e := range edits {
		if !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b Edit) int {
		if a.Range.Start != b.Range.Start {
			return a.Range.Start - b.Range.Start
		}
		switch {
		case a.IsInsert() && !b.IsInsert():
			return -1
		case !a.IsInsert() && b.IsInsert():
			return 1
		}
		return 0
	})
	return out
}

// Apply applies edits to src and returns the new content.
// Duplicate edits are applied once. Overlapping distinct edits yield ErrOverlap.
func Apply(src []byte, edits []Edit) ([]byte, error) {
	ordered := Normalize(edits)
	for i := 1; i < len(ordered); i++ {
		if conflicts(ordered[i-1], ordered[i]) {
			return nil, fmt.Errorf("%w: %s and %s", ErrOverlap, ordered[i-1], ordered[i])
		}
	}

	var out []byte
	cursor := 0
	for _, e := range ordered {
		if e.Range.Start < cursor || e.Range.End > len(src) {
			return nil, fmt.Errorf("%w: %s out of order", ErrOverlap, e)
		}
		out = append(out, src[cursor:e.Range.Start]...)
		out = append(out, e.Text...)
		cursor = e.Range.End
	}
	out = append(out, src[cursor:]...)
	return out, nil
}
