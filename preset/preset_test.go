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
package preset

import (
	"testing"

	"bennypowers.dev/direx/rule"
)

func TestRecommended(t *testing.T) {
	p, ok := Get(Recommended)
	if !ok {
		t.Fatalf("Expected %s preset", Recommended)
	}
	if p["prefer-direct-export"] != rule.Warn {
		t.Errorf("Expected prefer-direct-export at warn, got %s", p["prefer-direct-export"])
	}

	p["prefer-direct-export"] = rule.Off
	if Severity(Recommended, "prefer-direct-export") != rule.Warn {
		t.Errorf("Get must return a copy")
	}
	if _, ok := Get("strict"); ok {
		t.Errorf("Unexpected preset")
	}
}

func TestRules(t *testing.T) {
	r, ok := Rules().Get("prefer-direct-export")
	if !ok {
		t.Fatalf("Expected prefer-direct-export to be registered")
	}
	if !r.Meta().Fixable {
		t.Errorf("Expected rule to be fixable")
	}
}
