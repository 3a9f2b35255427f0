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
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every module file under the package directory.
const DefaultPattern = "**/*.{js,jsx,ts,tsx}"

// Discover expands patterns relative to root into absolute file paths,
// deduplicated and sorted. Files inside node_modules are skipped unless a
// pattern names node_modules itself. With no patterns, DefaultPattern is used.
func Discover(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range patterns {
		full := pattern
		if !filepath.IsAbs(pattern) {
			full = filepath.Join(root, pattern)
		}
		matches, err := doublestar.FilepathGlob(full, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		wantsNodeModules := strings.Contains(pattern, "node_modules")
		for _, match := range matches {
			if !wantsNodeModules && inNodeModules(root, match) {
				continue
			}
			absPath, err := filepath.Abs(match)
			if err != nil {
				return nil, fmt.Errorf("invalid file path %q: %w", match, err)
			}
			if _, exists := seen[absPath]; !exists {
				seen[absPath] = struct{}{}
				files = append(files, absPath)
			}
		}
	}

	slices.Sort(files)
	return files, nil
}

// inNodeModules looks only below root, so a root that is itself inside
// node_modules still lints.
func inNodeModules(root, path string) bool {
	if rel, err := filepath.Rel(root, path); err == nil {
		path = rel
	}
	return slices.Contains(strings.Split(filepath.ToSlash(path), "/"), "node_modules")
}
