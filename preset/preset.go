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

// Package preset bundles the built-in rules and the shareable
// configurations that enable them.
package preset

import (
	"bennypowers.dev/direx/rule"
	"bennypowers.dev/direx/rule/preferdirectexport"
)

// Recommended is the name of the default preset.
const Recommended = "recommended"

// Rules returns a registry of every built-in rule.
func Rules() *rule.Registry {
	return rule.NewRegistry(preferdirectexport.New())
}

// presets maps preset names to rule severities.
var presets = map[string]map[string]rule.Severity{
	Recommended: {
		preferdirectexport.Name: rule.Warn,
	},
}

// Get returns a copy of the named preset's severities.
func Get(name string) (map[string]rule.Severity, bool) {
	p, ok := presets[name]
	if !ok {
		return nil, false
	}
	out := make(map[string]rule.Severity, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out, true
}

// Severity returns the severity the named preset gives ruleName, or Off.
func Severity(name, ruleName string) rule.Severity {
	return presets[name][ruleName]
}
