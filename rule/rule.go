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

// Package rule defines the contract between lint rules and the linter that
// hosts them: rule metadata, the per-file context rules report through, and
// the diagnostics the linter hands back to callers.
package rule

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"bennypowers.dev/direx/edit"
	"bennypowers.dev/direx/syntax"
)

// Meta describes a rule.
type Meta struct {
	Name        string
	Description string
	// Type is "problem", "suggestion" or "layout".
	Type    string
	Fixable bool
	// Messages maps message IDs to templates with {{placeholder}} fields.
	Messages map[string]string
	// Schema is a JSON schema for the rule's options object.
	Schema string
}

// Rule creates a fresh visitor for every file it checks. Visitors hold
// per-file state and are never reused.
type Rule interface {
	Meta() Meta
	Create(ctx *Context) syntax.Visitor
}

// FixFunc computes the edits for a report. It is only called when the
// caller asked for fixes.
type FixFunc func(src *edit.Source) []edit.Edit

// Report is what a rule hands to Context.Report.
type Report struct {
	Range     edit.Range
	MessageID string
	Data      map[string]string
	Fix       FixFunc
}

// Context is the per-file view a rule gets of the linter.
type Context struct {
	Filename string
	Source   *edit.Source
	// Options is the rule's validated options object, possibly nil.
	Options map[string]any
	// FixRequested is true when reports' fixes will be applied or shown.
	FixRequested bool
	Logger       *slog.Logger

	meta     Meta
	severity Severity
	reports  []Diagnostic
}

// NewContext creates the context for running r over one file.
func NewContext(r Rule, severity Severity, filename string, src *edit.Source, options map[string]any) *Context {
	return &Context{
		Filename: filename,
		Source:   src,
		Options:  options,
		Logger:   slog.Default(),
		meta:     r.Meta(),
		severity: severity,
	}
}

// DecodeOptions decodes Options into target, which should hold defaults.
func (c *Context) DecodeOptions(target any) error {
	if c.Options == nil {
		return nil
	}
	data, err := json.Marshal(c.Options)
	if err != nil {
		return fmt.Errorf("encoding %s options: %w", c.meta.Name, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding %s options: %w", c.meta.Name, err)
	}
	return nil
}

// Report records a diagnostic.
func (c *Context) Report(r Report) {
	start := c.Source.Position(r.Range.Start)
	end := c.Source.Position(r.Range.End)

	d := Diagnostic{
		RuleID:    c.meta.Name,
		MessageID: r.MessageID,
		Message:   Interpolate(c.meta.Messages[r.MessageID], r.Data),
		Data:      r.Data,
		Severity:  c.severity,
		Range:     r.Range,
		Line:      start.Line,
		Column:    start.Column,
		EndLine:   end.Line,
		EndColumn: end.Column,
	}
	if c.FixRequested && r.Fix != nil {
		d.Fix = r.Fix(c.Source)
	}
	c.reports = append(c.reports, d)
}

// Diagnostics returns everything reported so far.
func (c *Context) Diagnostics() []Diagnostic {
	return c.reports
}

// Interpolate replaces {{key}} placeholders in template with data values.
// Unknown placeholders are left as written.
func Interpolate(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	RuleID    string            `json:"ruleId"`
	MessageID string            `json:"messageId"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Severity  Severity          `json:"severity"`
	Range     edit.Range        `json:"range"`
	Line      int               `json:"line"`
	Column    int               `json:"column"`
	EndLine   int               `json:"endLine"`
	EndColumn int               `json:"endColumn"`
	Fix       []edit.Edit       `json:"fix,omitempty"`
}

// Fixable reports whether d carries edits.
func (d Diagnostic) Fixable() bool {
	return len(d.Fix) > 0
}
