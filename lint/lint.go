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

// Package lint runs configured rules over source files and applies their
// fixes.
package lint

import (
	"fmt"
	"log/slog"
	"sort"

	"bennypowers.dev/direx/edit"
	"bennypowers.dev/direx/rule"
	"bennypowers.dev/direx/syntax"
)

// MaxPasses bounds how often fixes are applied to one file.
const MaxPasses = 10

// Linter runs a fixed set of rules. It is safe for concurrent use.
type Linter struct {
	rules  []rule.Configured
	logger *slog.Logger
}

// New creates a linter for the given rules.
func New(rules []rule.Configured) *Linter {
	return &Linter{rules: rules, logger: slog.Default()}
}

// WithLogger returns a copy of the linter that logs to logger.
func (l *Linter) WithLogger(logger *slog.Logger) *Linter {
	cp := *l
	cp.logger = logger
	return &cp
}

// Rules returns the configured rules.
func (l *Linter) Rules() []rule.Configured {
	return l.rules
}

// SourceResult is the outcome of linting one buffer.
type SourceResult struct {
	// Diagnostics are what remains after fixing, or everything without fix.
	Diagnostics []rule.Diagnostic
	// Output is the fixed content, identical to the input when nothing was fixed.
	Output []byte
	// Passes counts fix passes that changed the content.
	Passes int
}

// Fixed reports whether any fix was applied.
func (r *SourceResult) Fixed() bool {
	return r.Passes > 0
}

// Verify runs every rule over content once. Fixes are computed only when
// fix is set.
func (l *Linter) Verify(filename string, content []byte, fix bool) ([]rule.Diagnostic, error) {
	file, err := syntax.Parse(filename, content)
	if err != nil {
		return nil, err
	}
	if file.HasErrors {
		l.logger.Debug("Syntax errors in file, affected statements are skipped", "file", filename)
	}

	contexts := make([]*rule.Context, 0, len(l.rules))
	visitors := make(syntax.Visitors, 0, len(l.rules))
	for _, c := range l.rules {
		ctx := rule.NewContext(c.Rule, c.Severity, filename, file.Source, c.Options)
		ctx.FixRequested = fix
		ctx.Logger = l.logger
		contexts = append(contexts, ctx)
		visitors = append(visitors, c.Rule.Create(ctx))
	}

	syntax.Walk(file, visitors)

	var diags []rule.Diagnostic
	for _, ctx := range contexts {
		diags = append(diags, ctx.Diagnostics()...)
	}
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})
	return diags, nil
}

// LintSource lints content and, when fix is set, applies fixes pass after
// pass until nothing changes or MaxPasses is reached. Fixes that conflict
// with one already taken in the same pass wait for the next pass.
func (l *Linter) LintSource(filename string, content []byte, fix bool) (*SourceResult, error) {
	result := &SourceResult{Output: content}

	for {
		diags, err := l.Verify(filename, result.Output, fix)
		if err != nil {
			return nil, err
		}
		result.Diagnostics = diags
		if !fix || result.Passes >= MaxPasses {
			return result, nil
		}

		edits := l.selectFixes(filename, diags)
		if len(edits) == 0 {
			return result, nil
		}

		next, err := edit.Apply(result.Output, edits)
		if err != nil {
			return nil, fmt.Errorf("applying fixes to %s: %w", filename, err)
		}
		if string(next) == string(result.Output) {
			return result, nil
		}
		result.Output = next
		result.Passes++
	}
}

// selectFixes takes each diagnostic's fix whole, in order, unless it
// conflicts with one already taken.
func (l *Linter) selectFixes(filename string, diags []rule.Diagnostic) []edit.Edit {
	var accepted []edit.Edit
	for _, d := range diags {
		if !d.Fixable() {
			continue
		}
		if edit.Conflicts(accepted, d.Fix) {
			l.logger.Debug("Skipping overlapping fix until next pass",
				"file", filename,
				"rule", d.RuleID,
				"line", d.Line,
				"column", d.Column)
			continue
		}
		accepted = append(accepted, d.Fix...)
	}
	return accepted
}
