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
package version

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"bennypowers.dev/direx/internal/version"
)

func TestRenderers(t *testing.T) {
	info := version.Info{Version: "v1.2.3", GitCommit: "abc1234", GoVersion: "go1.25.5"}

	tests := []struct {
		format   string
		expected string
	}{
		{"text", "direx v1.2.3 (commit: abc1234, go1.25.5)\n"},
		{"short", "v1.2.3\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := renderers[tt.format](&buf, info); err != nil {
			t.Fatalf("%s: %v", tt.format, err)
		}
		if buf.String() != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.format, tt.expected, buf.String())
		}
	}

	var buf bytes.Buffer
	if err := renderers["json"](&buf, info); err != nil {
		t.Fatal(err)
	}
	var decoded version.Info
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Invalid JSON %q: %v", buf.String(), err)
	}
	if decoded.GitCommit != "abc1234" {
		t.Errorf("Unexpected commit %q", decoded.GitCommit)
	}
}

func TestCmd_InvalidFormat(t *testing.T) {
	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetArgs([]string{"--format", "xml"})
	defer Cmd.SetArgs(nil)
	Cmd.SilenceUsage = true
	Cmd.SilenceErrors = true

	err := Cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "json, short, text") {
		t.Errorf("Expected format error listing formats, got %v", err)
	}
}
