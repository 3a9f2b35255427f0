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
package preferdirectexport

import (
	"path/filepath"
	"regexp"
	"slices"
)

// Options configures the rule.
type Options struct {
	// IgnoreModules lists import sources, matched exactly, that are never reported.
	IgnoreModules []string `json:"ignoreModules,omitempty"`
	// OnlyIndexFiles restricts the rule to index.{js,ts,jsx,tsx}.
	OnlyIndexFiles bool `json:"onlyIndexFiles"`
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{OnlyIndexFiles: true}
}

// Schema validates the rule's options object.
const Schema = `{
  "type": "object",
  "properties": {
    "ignoreModules": {
      "type": "array",
      "items": { "type": "string" }
    },
    "onlyIndexFiles": {
      "type": "boolean"
    }
  },
  "additionalProperties": false
}`

var indexFile = regexp.MustCompile(`^index\.(js|ts|jsx|tsx)$`)

// IsIndexFile reports whether filename's base name is an index module.
func IsIndexFile(filename string) bool {
	return indexFile.MatchString(filepath.Base(filename))
}

// Applies reports whether the rule checks filename at all.
func (o Options) Applies(filename string) bool {
	return !o.OnlyIndexFiles || IsIndexFile(filename)
}

func (o Options) ignores(source string) bool {
	return slices.Contains(o.IgnoreModules, source)
}
