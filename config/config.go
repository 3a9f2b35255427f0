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

// Package config loads .direx.yaml and turns it into the set of rules to
// run, validating every rule's options before any file is linted.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/direx/preset"
	"bennypowers.dev/direx/rule"
)

var (
	// ErrUnknownRule is returned for a rule name no rule is registered under.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrUnknownPreset is returned when extends names a preset that does not exist.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrInvalidSeverity is returned for severities other than off, warn or error.
	ErrInvalidSeverity = rule.ErrInvalidSeverity
	// ErrInvalidOptions is returned when options fail their rule's schema.
	ErrInvalidOptions = errors.New("invalid rule options")
)

// Name is the config file's base name, without extension.
const Name = ".direx"

// RuleConfig configures one rule.
type RuleConfig struct {
	// Severity is nil when the file leaves it to the preset.
	Severity *rule.Severity `yaml:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// File is the contents of a config file.
type File struct {
	Extends string                 `yaml:"extends,omitempty"`
	Rules   map[string]*RuleConfig `yaml:"rules,omitempty"`
	// Path is where the file was read from, empty for the default config.
	Path string `yaml:"-"`
}

// Default is the config used when no file is found.
func Default() *File {
	return &File{Extends: preset.Recommended, Rules: map[string]*RuleConfig{}}
}

// Find locates the config file. An explicit configFile must exist; otherwise
// dir is searched for .direx.yaml (or .yml, .json) and an empty path is
// returned when there is none.
func Find(configFile, dir string) (string, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(Name)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load finds and parses the config file, falling back to Default.
// Viper lower-cases keys, so the file itself is decoded with yaml to keep
// option names intact. YAML is a superset of JSON, so .direx.json works too.
func Load(configFile, dir string) (*File, error) {
	path, err := Find(configFile, dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// LoadFromViper loads the file named by the "config" key, searching the
// "package" directory when it is unset.
func LoadFromViper() (*File, error) {
	dir, err := filepath.Abs(viper.GetString("package"))
	if err != nil {
		return nil, fmt.Errorf("invalid package directory: %w", err)
	}
	return Load(viper.GetString("config"), dir)
}

// Parse decodes config file content.
func Parse(data []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, err
	}
	if f.Rules == nil {
		f.Rules = map[string]*RuleConfig{}
	}
	return f, nil
}

// Override sets a rule's severity and merges options over the file's.
// A nil severity keeps the configured one.
func (f *File) Override(name string, severity *rule.Severity, options map[string]any) {
	rc, ok := f.Rules[name]
	if !ok {
		rc = &RuleConfig{}
		f.Rules[name] = rc
	}
	if severity != nil {
		rc.Severity = severity
	}
	if len(options) > 0 && rc.Options == nil {
		rc.Options = make(map[string]any, len(options))
	}
	for k, v := range options {
		rc.Options[k] = v
	}
}

// Resolve validates the file against the registered rules and returns the
// enabled ones, sorted by name. All problems are reported together.
func (f *File) Resolve(reg *rule.Registry) ([]rule.Configured, error) {
	severities := map[string]rule.Severity{}
	if f.Extends != "" {
		p, ok := preset.Get(f.Extends)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownPreset, f.Extends)
		}
		severities = p
	}

	var errs []error
	options := map[string]map[string]any{}
	for _, name := range sortedKeys(f.Rules) {
		rc := f.Rules[name]
		r, ok := reg.Get(name)
		if !ok {
			errs = append(errs, fmt.Errorf("%w %q", ErrUnknownRule, name))
			continue
		}
		if rc == nil {
			continue
		}
		if rc.Severity != nil {
			severities[name] = *rc.Severity
		}
		if err := ValidateOptions(r.Meta(), rc.Options); err != nil {
			errs = append(errs, err)
			continue
		}
		options[name] = rc.Options
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var out []rule.Configured
	for _, name := range sortedKeys(severities) {
		sev := severities[name]
		r, ok := reg.Get(name)
		if !ok || sev == rule.Off {
			continue
		}
		out = append(out, rule.Configured{Rule: r, Severity: sev, Options: options[name]})
	}
	return out, nil
}

// ValidateOptions checks options against the rule's JSON schema.
func ValidateOptions(meta rule.Meta, options map[string]any) error {
	if options == nil || meta.Schema == "" {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(meta.Schema),
		gojsonschema.NewGoLoader(options),
	)
	if err != nil {
		return fmt.Errorf("validating %s options: %w", meta.Name, err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}
	return fmt.Errorf("%w for %s: %s", ErrInvalidOptions, meta.Name, strings.Join(problems, "; "))
}

// Effective is the resolved config, as print-config shows it.
type Effective struct {
	Path  string                `yaml:"path,omitempty"`
	Rules map[string]RuleConfig `yaml:"rules"`
}

// Render encodes the enabled rules as YAML.
func Render(path string, configured []rule.Configured) ([]byte, error) {
	eff := Effective{Path: path, Rules: make(map[string]RuleConfig, len(configured))}
	for _, c := range configured {
		sev := c.Severity
		eff.Rules[c.Rule.Meta().Name] = RuleConfig{Severity: &sev, Options: c.Options}
	}
	return yaml.Marshal(eff)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
