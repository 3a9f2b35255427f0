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

// Package lint provides the lint command for direx.
package lint

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/direx/config"
	"bennypowers.dev/direx/fs"
	"bennypowers.dev/direx/internal/output"
	"bennypowers.dev/direx/lint"
	"bennypowers.dev/direx/preset"
	"bennypowers.dev/direx/rule/preferdirectexport"
)

// ErrProblems is returned when the run found more problems than allowed.
var ErrProblems = errors.New("lint problems found")

// Cmd is the lint cobra command that reports imports which are only
// re-exported, and optionally rewrites them as direct re-exports.
var Cmd = &cobra.Command{
	Use:   "lint [file...]",
	Short: "Report imports that are only re-exported",
	Long: `Lint JavaScript and TypeScript files for imports whose bindings are only
re-exported, and suggest "export { ... } from" instead.

With no files or --glob, every .js, .jsx, .ts and .tsx file under the
package directory is linted, skipping node_modules. By default only
index files are checked; pass --only-index-files=false to lint all files.`,
	Example: `  # Lint the current package
  direx lint

  # Lint specific files
  direx lint src/index.ts src/components/index.ts

  # Lint files matching a glob pattern, with 8 workers
  direx lint --glob "packages/*/src/**/*.ts" -j 8

  # Rewrite files in place
  direx lint --fix

  # Show what --fix would change, without writing
  direx lint --diff

  # Leave imports from some modules alone
  direx lint --ignore-module react --ignore-module ./legacy`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "stylish", "Output format (stylish, json)")
	Cmd.Flags().StringSlice("glob", nil, "Glob pattern to match files, relative to the package directory (repeatable)")
	Cmd.Flags().Bool("fix", false, "Write fixes to disk")
	Cmd.Flags().Bool("dry-run", false, "Compute fixes without writing them")
	Cmd.Flags().Bool("diff", false, "Print a diff of the fixes instead of writing them")
	Cmd.Flags().IntP("jobs", "j", 0, "Number of parallel workers (default: number of CPUs)")
	Cmd.Flags().StringSlice("ignore-module", nil, "Module source to ignore (repeatable)")
	Cmd.Flags().Bool("only-index-files", true, "Only lint index.{js,ts,jsx,tsx} files")
	Cmd.Flags().Int("max-warnings", -1, "Fail when there are more warnings than this (-1 to disable)")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()

	absRoot, err := filepath.Abs(viper.GetString("package"))
	if err != nil {
		return fmt.Errorf("invalid package directory: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "stylish", "json":
		// valid
	default:
		return fmt.Errorf("invalid format %q: must be one of stylish, json", format)
	}

	linter, err := newLinter(cmd)
	if err != nil {
		return err
	}

	files, err := collectFiles(cmd, osfs, absRoot, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No files to lint")
		return nil
	}

	fix, _ := cmd.Flags().GetBool("fix")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	showDiff, _ := cmd.Flags().GetBool("diff")
	jobs, _ := cmd.Flags().GetInt("jobs")
	opts := lint.Options{
		Fix:    fix || dryRun || showDiff,
		DryRun: dryRun || (showDiff && !fix),
		Jobs:   jobs,
	}

	started := time.Now()
	results, stats := lint.Collect(linter.LintBatch(cmd.Context(), osfs, files, opts), started)
	slog.Debug("Lint finished", "files", stats.Files, "duration_ms", stats.Duration)

	var buf bytes.Buffer
	switch format {
	case "json":
		out, err := output.JSON(results)
		if err != nil {
			return err
		}
		buf.Write(out)
	default:
		if showDiff {
			for _, r := range results {
				if r.Fixed {
					output.Diff(&buf, relPath(absRoot, r.File), r.Source, r.Output)
				}
			}
		}
		output.Stylish(&buf, results, absRoot)
		output.Summary(&buf, stats, opts.DryRun)
	}
	if err := output.Emit(osfs, cmd.OutOrStdout(), buf.Bytes()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	cmd.SilenceUsage = true
	maxWarnings, _ := cmd.Flags().GetInt("max-warnings")
	switch {
	case stats.Failed == stats.Files:
		return fmt.Errorf("all %d files failed to lint", stats.Failed)
	case stats.Errors > 0:
		return fmt.Errorf("%w: %d errors", ErrProblems, stats.Errors)
	case maxWarnings >= 0 && stats.Warnings > maxWarnings:
		return fmt.Errorf("%w: %d warnings exceeds --max-warnings %d", ErrProblems, stats.Warnings, maxWarnings)
	}
	return nil
}

// newLinter loads the config file, applies rule options given as flags,
// and builds a linter for the enabled rules.
func newLinter(cmd *cobra.Command) (*lint.Linter, error) {
	cfg, err := config.LoadFromViper()
	if err != nil {
		return nil, err
	}

	options := map[string]any{}
	if cmd.Flags().Changed("ignore-module") {
		modules, _ := cmd.Flags().GetStringSlice("ignore-module")
		options["ignoreModules"] = modules
	}
	if cmd.Flags().Changed("only-index-files") {
		only, _ := cmd.Flags().GetBool("only-index-files")
		options["onlyIndexFiles"] = only
	}
	cfg.Override(preferdirectexport.Name, nil, options)

	configured, err := cfg.Resolve(preset.Rules())
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Path != "" {
		slog.Debug("Loaded config", "path", cfg.Path)
	}
	return lint.New(configured).WithLogger(slog.Default()), nil
}

// collectFiles gathers files from args and glob patterns, deduplicating by
// absolute path. With neither, the package directory is searched.
func collectFiles(cmd *cobra.Command, fsys fs.FileSystem, absRoot string, args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) error {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("invalid file path %q: %w", path, err)
		}
		if _, exists := seen[absPath]; !exists {
			seen[absPath] = struct{}{}
			files = append(files, absPath)
		}
		return nil
	}

	for _, arg := range args {
		if _, err := fsys.Stat(arg); err != nil {
			return nil, fmt.Errorf("cannot lint %q: %w", arg, err)
		}
		if err := add(arg); err != nil {
			return nil, err
		}
	}

	globs, _ := cmd.Flags().GetStringSlice("glob")
	if len(args) > 0 && len(globs) == 0 {
		return files, nil
	}

	matches, err := lint.Discover(absRoot, globs)
	if err != nil {
		return nil, err
	}
	for _, match := range matches {
		if err := add(match); err != nil {
			return nil, err
		}
	}
	return files, nil
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
