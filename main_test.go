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
package main

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	// Build the binary before running tests
	wd := mustGetwd()
	cmd := exec.Command("go", "build", "-o", "direx_test", ".")
	cmd.Dir = wd
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("failed to build test binary: " + err.Error() + "\n" + string(out))
	}
	code := m.Run()
	_ = os.Remove(filepath.Join(wd, "direx_test"))
	os.Exit(code)
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return wd
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	binary := filepath.Join(mustGetwd(), "direx_test")
	cmd := exec.Command(binary, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("Failed to run CLI: %v", err)
		}
	}

	return stdout, stderr, exitCode
}

// copyFixture copies a testdata directory somewhere it may be modified.
func copyFixture(t *testing.T, name string) string {
	t.Helper()
	src := filepath.Join("testdata", name)
	dst := t.TempDir()
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(src, path)
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
	if err != nil {
		t.Fatalf("Failed to copy fixture %s: %v", name, err)
	}
	return dst
}

func TestLint(t *testing.T) {
	fixtureDir := filepath.Join("testdata", "lint", "barrel")

	stdout, stderr, code := runCLI(t, "lint", "--package", fixtureDir)
	if code != 0 {
		t.Fatalf("Expected exit code 0 for warnings, got %d\nstderr: %s", code, stderr)
	}

	for _, want := range []string{
		"index.js",
		filepath.Join("components", "index.ts"),
		"Prefer direct re-export for imports from 'module-a'",
		"prefer-direct-export",
		"3 problems (0 errors, 3 warnings)",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Expected %q in output:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "utils.js") {
		t.Errorf("Expected non-index files to be skipped:\n%s", stdout)
	}
}

func TestLintAllFiles(t *testing.T) {
	fixtureDir := filepath.Join("testdata", "lint", "barrel")

	stdout, stderr, code := runCLI(t, "lint", "--package", fixtureDir, "--only-index-files=false")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d\nstderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "utils.js") {
		t.Errorf("Expected utils.js to be linted:\n%s", stdout)
	}
}

func TestLintJSONFormat(t *testing.T) {
	fixtureDir := filepath.Join("testdata", "lint", "barrel")

	stdout, stderr, code := runCLI(t, "lint", "--package", fixtureDir, "--format", "json")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d\nstderr: %s", code, stderr)
	}

	var results []map[string]any
	if err := json.Unmarshal([]byte(stdout), &results); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nstdout: %s", err, stdout)
	}
	if len(results) != 4 {
		t.Fatalf("Expected 4 files, got %d", len(results))
	}
	var warnings float64
	for _, r := range results {
		warnings += r["warningCount"].(float64)
	}
	if warnings != 3 {
		t.Errorf("Expected 3 warnings, got %v", warnings)
	}
}

func TestLintFix(t *testing.T) {
	dir := copyFixture(t, filepath.Join("lint", "barrel"))

	stdout, stderr, code := runCLI(t, "lint", "--package", dir, "--fix")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d\nstderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Fixed 2 files") {
		t.Errorf("Expected fix summary, got:\n%s", stdout)
	}

	content, err := os.ReadFile(filepath.Join(dir, "components", "index.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "export { default as Button } from \"./button\";\n" {
		t.Errorf("Unexpected fixed content %q", content)
	}

	// A second run has nothing left to report.
	stdout, _, _ = runCLI(t, "lint", "--package", dir)
	if strings.Contains(stdout, "problem") {
		t.Errorf("Expected a clean run after fixing:\n%s", stdout)
	}
}

func TestLintDiff(t *testing.T) {
	dir := copyFixture(t, filepath.Join("lint", "barrel"))
	before, _ := os.ReadFile(filepath.Join(dir, "index.js"))

	stdout, stderr, code := runCLI(t, "lint", "--package", dir, "--diff")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d\nstderr: %s", code, stderr)
	}
	for _, want := range []string{"--- index.js", "+export { foo } from \"module-a\";", "Would fix 2 files"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Expected %q in output:\n%s", want, stdout)
		}
	}

	after, _ := os.ReadFile(filepath.Join(dir, "index.js"))
	if !bytes.Equal(before, after) {
		t.Error("Expected --diff not to write files")
	}
}

func TestLintErrorSeverity(t *testing.T) {
	dir := copyFixture(t, filepath.Join("lint", "barrel"))
	config := "rules:\n  prefer-direct-export:\n    severity: error\n"
	if err := os.WriteFile(filepath.Join(dir, ".direx.yaml"), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, code := runCLI(t, "lint", "--package", dir)
	if code != 1 {
		t.Fatalf("Expected exit code 1 for errors, got %d", code)
	}
	if !strings.Contains(stdout, "3 problems (3 errors, 0 warnings)") {
		t.Errorf("Expected error summary:\n%s", stdout)
	}
}

func TestLintMaxWarnings(t *testing.T) {
	fixtureDir := filepath.Join("testdata", "lint", "barrel")

	_, stderr, code := runCLI(t, "lint", "--package", fixtureDir, "--max-warnings", "0")
	if code != 1 {
		t.Fatalf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "--max-warnings 0") {
		t.Errorf("Expected max-warnings error, got: %s", stderr)
	}
}

func TestLintIgnoreModule(t *testing.T) {
	fixtureDir := filepath.Join("testdata", "lint", "barrel")

	stdout, stderr, code := runCLI(t, "lint", "--package", fixtureDir,
		"--ignore-module", "module-a", "--ignore-module", "module-b")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d\nstderr: %s", code, stderr)
	}
	if strings.Contains(stdout, "module-a") || !strings.Contains(stdout, "'./button'") {
		t.Errorf("Expected only ./button to be reported:\n%s", stdout)
	}
}

func TestLintInvalidConfig(t *testing.T) {
	dir := copyFixture(t, filepath.Join("lint", "barrel"))
	config := "rules:\n  prefer-direct-export:\n    options:\n      ignoreModules: nope\n"
	if err := os.WriteFile(filepath.Join(dir, ".direx.yaml"), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := runCLI(t, "lint", "--package", dir)
	if code == 0 {
		t.Fatal("Expected non-zero exit code for invalid options")
	}
	if !strings.Contains(stderr, "invalid rule options") {
		t.Errorf("Expected options error, got: %s", stderr)
	}
}

func TestLintInvalidFormat(t *testing.T) {
	_, stderr, code := runCLI(t, "lint", "--format", "xml")
	if code == 0 {
		t.Fatal("Expected non-zero exit code for invalid format")
	}
	if !strings.Contains(stderr, "invalid format") {
		t.Errorf("Expected format error, got: %s", stderr)
	}
}

func TestLintMissingFile(t *testing.T) {
	_, stderr, code := runCLI(t, "lint", "nonexistent.ts")
	if code == 0 {
		t.Fatal("Expected non-zero exit code for missing file")
	}
	if !strings.Contains(stderr, "nonexistent.ts") {
		t.Errorf("Expected file name in error, got: %s", stderr)
	}
}

func TestLintOutputFile(t *testing.T) {
	fixtureDir := filepath.Join("testdata", "lint", "barrel")
	tmpFile := filepath.Join(t.TempDir(), "report.json")

	stdout, stderr, code := runCLI(t, "lint", "--package", fixtureDir, "--format", "json", "--output", tmpFile)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d\nstderr: %s", code, stderr)
	}
	if stdout != "" {
		t.Errorf("Expected no stdout when writing to file, got: %s", stdout)
	}
	content, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if !json.Valid(content) {
		t.Errorf("Expected valid JSON in output file, got: %s", content)
	}
}

func TestRules(t *testing.T) {
	stdout, stderr, code := runCLI(t, "rules")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d\nstderr: %s", code, stderr)
	}
	for _, want := range []string{"prefer-direct-export", "warn", "yes"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestPrintConfig(t *testing.T) {
	dir := copyFixture(t, filepath.Join("lint", "barrel"))
	config := "rules:\n  prefer-direct-export:\n    severity: error\n    options:\n      ignoreModules: [react]\n"
	if err := os.WriteFile(filepath.Join(dir, ".direx.yaml"), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, code := runCLI(t, "print-config", "--package", dir)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d\nstderr: %s", code, stderr)
	}
	for _, want := range []string{"prefer-direct-export:", "severity: error", "ignoreModules:", "- react"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestVersion(t *testing.T) {
	stdout, _, code := runCLI(t, "version", "--format", "json")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d", code)
	}
	var info map[string]any
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("Failed to parse version JSON: %v", err)
	}
	if _, ok := info["version"]; !ok {
		t.Errorf("Expected version key, got %v", info)
	}
}

func TestHelp(t *testing.T) {
	stdout, _, code := runCLI(t, "--help")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d", code)
	}
	for _, sub := range []string{"lint", "rules", "print-config", "version"} {
		if !strings.Contains(stdout, sub) {
			t.Errorf("Expected %q in help output", sub)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	_, stderr, code := runCLI(t, "unknown-command")
	if code == 0 {
		t.Error("Expected non-zero exit code for unknown command")
	}
	if !strings.Contains(stderr, "unknown command") {
		t.Errorf("Expected unknown command error, got: %s", stderr)
	}
}
