package discovery

import (
	"path/filepath"
	"strings"
)

// Filter narrows a list of spec files
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps specs whose file name matches pattern. A pattern with
// wildcards is matched against the base name (case-insensitive); a plain
// pattern is a case-insensitive substring.
func (f *Filter) FilterByName(specs []string, pattern string) []string {
	if pattern == "" {
		return specs
	}
	lower := strings.ToLower(pattern)
	wildcard := strings.ContainsAny(pattern, "*?[")

	var filtered []string
	for _, spec := range specs {
		name := strings.ToLower(filepath.Base(spec))
		if wildcard {
			if ok, err := filepath.Match(lower, name); err == nil && ok {
				filtered = append(filtered, spec)
			}
			continue
		}
		if strings.Contains(name, lower) {
			filtered = append(filtered, spec)
		}
	}
	return filtered
}

// FilterByPaths keeps specs that appear in paths. Paths are compared after
// cleaning and relative to projectPath, so "./integration/a.js" and
// "/abs/project/integration/a.js" refer to the same spec.
func (f *Filter) FilterByPaths(specs, paths []string, projectPath string) []string {
	wanted := make(map[string]bool, len(paths))
	for _, p := range paths {
		wanted[PathKey(projectPath, p)] = true
	}
	var filtered []string
	for _, spec := range specs {
		if wanted[PathKey(projectPath, spec)] {
			filtered = append(filtered, spec)
		}
	}
	return filtered
}

// PathKey normalises a spec path for comparisons.
func PathKey(projectPath, p string) string {
	if filepath.IsAbs(p) && projectPath != "" {
		if abs, err := filepath.Abs(projectPath); err == nil {
			if rel, err := filepath.Rel(abs, p); err == nil && !strings.HasPrefix(rel, "..") {
				p = rel
			}
		}
	} else if projectPath != "" && projectPath != "." {
		if rel, err := filepath.Rel(projectPath, p); err == nil && !strings.HasPrefix(rel, "..") {
			p = rel
		}
	}
	return filepath.ToSlash(filepath.Clean(p))
}
