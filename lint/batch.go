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
package lint

import (
	"context"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"bennypowers.dev/direx/fs"
	"bennypowers.dev/direx/rule"
)

// Options configures batch linting.
type Options struct {
	// Fix applies fixes.
	Fix bool
	// DryRun computes fixes without writing files.
	DryRun bool
	// Jobs is the number of files linted at once (default: number of CPUs).
	Jobs int
}

// FileResult is the outcome of linting one file.
type FileResult struct {
	File         string            `json:"filePath"`
	Diagnostics  []rule.Diagnostic `json:"messages"`
	ErrorCount   int               `json:"errorCount"`
	WarningCount int               `json:"warningCount"`
	Fixed        bool              `json:"fixed,omitempty"`
	Error        string            `json:"error,omitempty"`
	// Source and Output hold the content before and after fixing.
	Source []byte `json:"-"`
	Output []byte `json:"-"`
}

// Stats holds aggregate statistics from a batch.
type Stats struct {
	Files    int   `json:"files"`
	Errors   int   `json:"errors"`
	Warnings int   `json:"warnings"`
	Fixed    int   `json:"fixed"`
	Failed   int   `json:"failed"`
	Duration int64 `json:"duration_ms"`
}

// LintFile lints one file, writing fixes back unless opts.DryRun is set.
func (l *Linter) LintFile(fsys fs.FileSystem, path string, opts Options) FileResult {
	result := FileResult{File: path}

	content, err := fsys.ReadFile(path)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Source = content

	src, err := l.LintSource(path, content, opts.Fix)
	if err != nil {
		result.Error = err.Error()
		result.Output = content
		return result
	}
	result.Output = src.Output
	result.Diagnostics = src.Diagnostics
	result.Fixed = src.Fixed()

	for _, d := range src.Diagnostics {
		switch d.Severity {
		case rule.Error:
			result.ErrorCount++
		case rule.Warn:
			result.WarningCount++
		}
	}

	if result.Fixed && !opts.DryRun {
		if err := fsys.WriteFile(path, src.Output, 0644); err != nil {
			result.Error = err.Error()
		}
	}
	return result
}

// LintBatch lints files in parallel. The returned channel is closed once
// every file is done or ctx is cancelled.
func (l *Linter) LintBatch(ctx context.Context, fsys fs.FileSystem, files []string, opts Options) <-chan FileResult {
	results := make(chan FileResult, len(files))

	go func() {
		defer close(results)

		jobs := opts.Jobs
		if jobs <= 0 {
			jobs = runtime.NumCPU()
		}

		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(jobs)
		for _, file := range files {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				results <- l.LintFile(fsys, file, opts)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			l.logger.Warn("Lint cancelled", "error", err)
		}
	}()

	return results
}

// Collect drains results, sorting them by file, and totals them up.
func Collect(results <-chan FileResult, started time.Time) ([]FileResult, Stats) {
	var all []FileResult
	var stats Stats
	for r := range results {
		all = append(all, r)
		stats.Files++
		stats.Errors += r.ErrorCount
		stats.Warnings += r.WarningCount
		if r.Fixed {
			stats.Fixed++
		}
		if r.Error != "" {
			stats.Failed++
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].File < all[j].File
	})
	stats.Duration = time.Since(started).Milliseconds()
	return all, stats
}
